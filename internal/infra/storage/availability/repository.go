package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CharterService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var windowColumns = []string{"id", "captain_id", "day_of_week", "start_time", "end_time", "is_active"}

var blackoutColumns = []string{"id", "captain_id", "date", "reason", "created_at"}

// Repository репозиторий окон доступности и blackout дат капитана
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveWindows получает активные окна капитана на день недели.
// Пустой результат означает, что в этот день бронировать нельзя.
func (r *Repository) GetActiveWindows(ctx context.Context, captainID uuid.UUID, weekday time.Weekday) ([]*domain.AvailabilityWindow, error) {
	return r.listWindows(ctx, "GetActiveWindows", squirrel.Eq{
		"captain_id":  captainID,
		"day_of_week": int(weekday),
		"is_active":   true,
	})
}

// ListWindows получает все окна капитана (включая неактивные)
func (r *Repository) ListWindows(ctx context.Context, captainID uuid.UUID) ([]*domain.AvailabilityWindow, error) {
	return r.listWindows(ctx, "ListWindows", squirrel.Eq{"captain_id": captainID})
}

func (r *Repository) listWindows(ctx context.Context, op string, where squirrel.Eq) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(where).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		var dayOfWeek int
		if err := rows.Scan(&w.ID, &w.CaptainID, &dayOfWeek, &w.StartTime, &w.EndTime, &w.IsActive); err != nil {
			return nil, fmt.Errorf("%w: %s - scan window: %w", ErrScanRow, op, err)
		}
		w.DayOfWeek = time.Weekday(dayOfWeek)
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return windows, nil
}

// GetActiveWeekdays возвращает дни недели, в которых у капитана есть активные окна
func (r *Repository) GetActiveWeekdays(ctx context.Context, captainID uuid.UUID) (map[time.Weekday]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT day_of_week").
		From("availability_windows").
		Where(squirrel.Eq{"captain_id": captainID, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWeekdays - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWeekdays - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	weekdays := make(map[time.Weekday]bool)
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: GetActiveWeekdays - scan day: %w", ErrScanRow, err)
		}
		weekdays[time.Weekday(day)] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveWeekdays - rows error: %w", ErrScanRow, err)
	}

	return weekdays, nil
}

// ReplaceWindows заменяет все окна капитана новым набором.
// Должен вызываться внутри транзакции.
func (r *Repository) ReplaceWindows(ctx context.Context, captainID uuid.UUID, windows []*domain.AvailabilityWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"captain_id": captainID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWindows - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWindows - execute delete: %w", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("availability_windows").Columns(windowColumns...)
	for _, w := range windows {
		if w.ID == uuid.Nil {
			w.ID = uuid.New()
		}
		w.CaptainID = captainID
		insert = insert.Values(w.ID, captainID, int(w.DayOfWeek), w.StartTime, w.EndTime, w.IsActive)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWindows - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWindows - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetBlackout получает blackout капитана на календарную дату
func (r *Repository) GetBlackout(ctx context.Context, captainID uuid.UUID, date time.Time) (*domain.BlackoutDate, error) {
	blackouts, err := r.listBlackouts(ctx, "GetBlackout", squirrel.Eq{
		"captain_id": captainID,
		"date":       date.Format(domain.DateFormat),
	})
	if err != nil {
		return nil, err
	}
	if len(blackouts) == 0 {
		return nil, ErrBlackoutNotFound
	}
	return blackouts[0], nil
}

// GetBlackoutsInRange получает blackout даты в диапазоне [from, to] включительно
func (r *Repository) GetBlackoutsInRange(ctx context.Context, captainID uuid.UUID, from, to time.Time) ([]*domain.BlackoutDate, error) {
	return r.listBlackouts(ctx, "GetBlackoutsInRange", squirrel.And{
		squirrel.Eq{"captain_id": captainID},
		squirrel.GtOrEq{"date": from.Format(domain.DateFormat)},
		squirrel.LtOrEq{"date": to.Format(domain.DateFormat)},
	})
}

func (r *Repository) listBlackouts(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.BlackoutDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_dates").
		Where(where).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	blackouts := make([]*domain.BlackoutDate, 0)
	for rows.Next() {
		var b domain.BlackoutDate
		var createdAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.CaptainID, &b.Date, &b.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan blackout: %w", ErrScanRow, op, err)
		}
		y, m, d := b.Date.Date()
		b.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		b.CreatedAt = createdAt.Time
		blackouts = append(blackouts, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return blackouts, nil
}

// AddBlackout добавляет blackout дату
func (r *Repository) AddBlackout(ctx context.Context, blackout *domain.BlackoutDate) (*domain.BlackoutDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if blackout.ID == uuid.Nil {
		blackout.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("blackout_dates").
		Columns("id", "captain_id", "date", "reason").
		Values(blackout.ID, blackout.CaptainID, blackout.Date.Format(domain.DateFormat), blackout.Reason).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddBlackout - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&blackout.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateBlackout
		}
		return nil, fmt.Errorf("%w: AddBlackout - execute insert: %w", ErrExecQuery, err)
	}

	return blackout, nil
}

// DeleteBlackout удаляет blackout капитана на дату
func (r *Repository) DeleteBlackout(ctx context.Context, captainID uuid.UUID, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackout_dates").
		Where(squirrel.Eq{"captain_id": captainID, "date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlackout - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlackout - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlackout - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlackoutNotFound
	}

	return nil
}
