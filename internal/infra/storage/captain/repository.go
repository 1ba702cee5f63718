package captain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CharterService/pkg/psqlbuilder"
)

// lockCaptainQuery берет транзакционную advisory блокировку на капитана.
// Все записи бронирований одного капитана выстраиваются в очередь.
const lockCaptainQuery = "SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))"

// Repository репозиторий капитанов: политика доступности и типы поездок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория капитанов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPolicy получает политику капитана.
// NULL в buffer_minutes/advance_booking_days означает значения по умолчанию.
func (r *Repository) GetPolicy(ctx context.Context, captainID uuid.UUID) (*domain.CaptainPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"timezone",
		"buffer_minutes",
		"advance_booking_days",
		"hibernating",
		"updated_at",
	).
		From("captains").
		Where(squirrel.Eq{"id": captainID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - build select query: %w", ErrBuildQuery, err)
	}

	var policy domain.CaptainPolicy
	var bufferMinutes, advanceDays sql.NullInt64
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.CaptainID,
		&policy.Timezone,
		&bufferMinutes,
		&advanceDays,
		&policy.Hibernating,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCaptainNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - scan policy: %w", ErrScanRow, err)
	}

	if bufferMinutes.Valid {
		v := int(bufferMinutes.Int64)
		policy.BufferMinutes = &v
	}
	if advanceDays.Valid {
		v := int(advanceDays.Int64)
		policy.AdvanceBookingDays = &v
	}
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// IsHibernating проверяет флаг гибернации капитана
func (r *Repository) IsHibernating(ctx context.Context, captainID uuid.UUID) (bool, error) {
	policy, err := r.GetPolicy(ctx, captainID)
	if err != nil {
		return false, err
	}
	return policy.Hibernating, nil
}

// UpdatePolicy сохраняет политику капитана
func (r *Repository) UpdatePolicy(ctx context.Context, policy *domain.CaptainPolicy) (*domain.CaptainPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("captains").
		Set("timezone", policy.Timezone).
		Set("buffer_minutes", policy.BufferMinutes).
		Set("advance_booking_days", policy.AdvanceBookingDays).
		Set("hibernating", policy.Hibernating).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": policy.CaptainID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePolicy - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&policy.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCaptainNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePolicy - execute update: %w", ErrExecQuery, err)
	}

	return policy, nil
}

// GetTripType получает тип поездки по ID
func (r *Repository) GetTripType(ctx context.Context, tripTypeID uuid.UUID) (*domain.TripType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"captain_id",
		"vessel_id",
		"name",
		"duration_hours",
		"departure_times",
	).
		From("trip_types").
		Where(squirrel.Eq{"id": tripTypeID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTripType - build select query: %w", ErrBuildQuery, err)
	}

	var tripType domain.TripType
	var departures pq.StringArray

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tripType.ID,
		&tripType.CaptainID,
		&tripType.VesselID,
		&tripType.Name,
		&tripType.DurationHours,
		&departures,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTripTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTripType - scan trip type: %w", ErrScanRow, err)
	}

	tripType.DepartureTimes = []string(departures)
	if tripType.DepartureTimes == nil {
		tripType.DepartureTimes = []string{}
	}

	return &tripType, nil
}

// LockCaptain берет advisory блокировку капитана до конца текущей транзакции
func (r *Repository) LockCaptain(ctx context.Context, captainID uuid.UUID) error {
	tx, ok := dbmetrics.GetTx(ctx)
	if !ok {
		return ErrLockRequiresTx
	}

	if _, err := tx.ExecContext(ctx, lockCaptainQuery, captainID.String()); err != nil {
		return fmt.Errorf("%w: LockCaptain - execute: %w", ErrExecQuery, err)
	}

	return nil
}
