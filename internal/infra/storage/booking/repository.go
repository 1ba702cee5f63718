package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CharterService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"captain_id",
	"vessel_id",
	"trip_type_id",
	"guest_id",
	"scheduled_start",
	"scheduled_end",
	"status",
	"party_size",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается внутри транзакции создания: нарушение exclusion constraint
// возвращается как ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"captain_id",
			"vessel_id",
			"trip_type_id",
			"guest_id",
			"scheduled_start",
			"scheduled_end",
			"status",
			"party_size",
			"notes",
		).
		Values(
			booking.ID,
			booking.CaptainID,
			booking.VesselID,
			booking.TripTypeID,
			booking.GuestID,
			booking.ScheduledStart,
			booking.ScheduledEnd,
			booking.Status,
			booking.PartySize,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, mapWriteError("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру.
// CaptainID и VesselID объединяются через OR: бронирование капитана или его судна.
// Без Status и IncludeInactive возвращаются только активные бронирования.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	// Владелец: капитан и/или судно
	switch {
	case filter.CaptainID != nil && filter.VesselID != nil:
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"captain_id": *filter.CaptainID},
			squirrel.Eq{"vessel_id": *filter.VesselID},
		})
	case filter.CaptainID != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"captain_id": *filter.CaptainID})
	case filter.VesselID != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vessel_id": *filter.VesselID})
	}

	if filter.GuestID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"guest_id": *filter.GuestID})
	}

	// Период: бронирование пересекает [From, To)
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"scheduled_end": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"scheduled_start": *filter.To})
	}

	if filter.ExcludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeBookingID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusStrings(domain.ActiveStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("scheduled_start ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveOverlapping получает активные бронирования капитана (или судна),
// которые пересекают интервал. Интервал уже должен быть расширен на буфер.
func (r *Repository) GetActiveOverlapping(
	ctx context.Context,
	captainID uuid.UUID,
	vesselID *uuid.UUID,
	interval domain.Interval,
	excludeBookingID *uuid.UUID,
) ([]*domain.Booking, error) {
	return r.List(ctx, domain.BookingsFilter{
		CaptainID:        &captainID,
		VesselID:         vesselID,
		From:             &interval.Start,
		To:               &interval.End,
		ExcludeBookingID: excludeBookingID,
	})
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("UpdateStatus - execute update", err)
	}

	return checkAffected("UpdateStatus", result)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected("Cancel", result)
}

// Reschedule переносит бронирование на новый интервал и ставит статус rescheduled
func (r *Repository) Reschedule(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("scheduled_start", start).
		Set("scheduled_end", end).
		Set("status", domain.StatusRescheduled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("Reschedule - execute update", err)
	}

	return checkAffected("Reschedule", result)
}

func checkAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CaptainID,
		&booking.VesselID,
		&booking.TripTypeID,
		&booking.GuestID,
		&booking.ScheduledStart,
		&booking.ScheduledEnd,
		&booking.Status,
		&booking.PartySize,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
