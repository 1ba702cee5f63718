package check_conflicts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// UseCase проверка пересечения интервала с активными бронированиями.
// Используется и как подсказка на чтении, и повторно внутри транзакции записи.
type UseCase struct {
	bookingRepo BookingRepository
	policyRepo  PolicyRepository
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policyRepo PolicyRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		policyRepo:  policyRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет проверку конфликтов.
// Если в контексте есть транзакция, бронирования читаются в ней.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflicts: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем буфер
	bufferMinutes, err := uc.resolveBuffer(ctx, req)
	if err != nil {
		return nil, err
	}
	buffer := time.Duration(bufferMinutes) * time.Minute

	// 3. Получаем активные бронирования, которые могут пересечься с интервалом с учетом буфера
	interval := domain.Interval{Start: req.Start, End: req.End}
	lookup := domain.Interval{Start: req.Start.Add(-buffer), End: req.End.Add(buffer)}

	bookings, err := uc.bookingRepo.GetActiveOverlapping(ctx, req.CaptainID, req.VesselID, lookup, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to get bookings for captain=%s: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 4. Применяем общий предикат пересечения ко всем бронированиям
	conflicts := domain.ConflictingBookings(interval, bookings, buffer)

	response := &Response{
		HasConflict:         len(conflicts) > 0,
		BufferMinutes:       bufferMinutes,
		ConflictingBookings: conflicts,
	}

	if response.HasConflict {
		response.Reason = conflictReason(len(conflicts), bufferMinutes)
		if uc.metrics != nil {
			stage := req.Stage
			if stage == "" {
				stage = StageAdvisory
			}
			uc.metrics.ObserveConflict(stage)
		}
		uc.logger.Info("CheckConflicts: captain=%s interval=%s..%s conflicts=%d",
			req.CaptainID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339), len(conflicts))
	}

	return response, nil
}

func (uc *UseCase) resolveBuffer(ctx context.Context, req *Request) (int, error) {
	if req.BufferMinutes != nil {
		return *req.BufferMinutes, nil
	}

	policy, err := uc.policyRepo.GetPolicy(ctx, req.CaptainID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CheckConflicts: captain=%s not found", req.CaptainID)
			return 0, ErrCaptainNotFound
		}
		uc.logger.Error("CheckConflicts: failed to get policy for captain=%s: %v", req.CaptainID, err)
		return 0, fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
	}

	return policy.EffectiveBufferMinutes(), nil
}

func conflictReason(count, bufferMinutes int) string {
	if count == 1 {
		return fmt.Sprintf("overlaps an existing booking (buffer %d min)", bufferMinutes)
	}
	return fmt.Sprintf("overlaps %d existing bookings (buffer %d min)", count, bufferMinutes)
}
