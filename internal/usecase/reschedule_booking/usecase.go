package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CharterService/internal/slots"
	"github.com/m04kA/SMC-CharterService/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
	"github.com/m04kA/SMC-CharterService/pkg/timezone"
)

// UseCase use case для переноса бронирования капитаном.
// Новое время проверяется теми же правилами, что и при создании,
// само бронирование исключается из проверки конфликтов.
type UseCase struct {
	bookingRepo      BookingRepository
	captainRepo      CaptainRepository
	availabilityRepo AvailabilityRepository
	conflictChecker  ConflictChecker
	txManager        TransactionManager
	publisher        EventPublisher
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	captainRepo CaptainRepository,
	availabilityRepo AvailabilityRepository,
	conflictChecker ConflictChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		captainRepo:      captainRepo,
		availabilityRepo: availabilityRepo,
		conflictChecker:  conflictChecker,
		txManager:        txManager,
		publisher:        publisher,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет перенос бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%s, actor=%s, start=%s",
		req.BookingID, req.ActorID, req.Start.Format(time.RFC3339))

	// 1. Валидация входных данных
	if req.ActorID == uuid.Nil || req.BookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: bookingId and user are required", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return nil, fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		result         *domain.Booking
		previousStatus domain.BookingStatus
	)

	// 2. Проверка и перенос в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирование (FOR UPDATE внутри транзакции)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("RescheduleBooking: booking=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking: %v", err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if booking.CaptainID != req.ActorID {
			uc.logger.Warn("RescheduleBooking: user=%s is not captain of booking=%s", req.ActorID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking=%s has status=%s", req.BookingID, booking.Status)
			return ErrCannotReschedule
		}

		// 2.2. Блокировка капитана
		if err := uc.captainRepo.LockCaptain(txCtx, booking.CaptainID); err != nil {
			uc.logger.Error("RescheduleBooking: failed to lock captain=%s: %v", booking.CaptainID, err)
			return fmt.Errorf("%w: failed to lock captain: %w", ErrInternal, err)
		}

		// 2.3. Политика, тип поездки, окна и blackout
		policy, err := uc.captainRepo.GetPolicy(txCtx, booking.CaptainID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrCaptainNotFound
			}
			return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
		}
		if policy.Hibernating {
			uc.logger.Warn("RescheduleBooking: captain=%s is hibernating", booking.CaptainID)
			return &domain.UnavailableError{Kind: domain.UnavailableHibernating}
		}

		loc, err := timezone.LoadLocation(policy.Timezone)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		tripType, err := uc.captainRepo.GetTripType(txCtx, booking.TripTypeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrTripTypeNotFound
			}
			return fmt.Errorf("%w: failed to get trip type: %w", ErrInternal, err)
		}

		departures, err := slots.ParseDepartures(tripType.DepartureTimes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTripType, err)
		}

		date := timezone.DateOf(req.Start, loc)

		blackout, err := uc.availabilityRepo.GetBlackout(txCtx, booking.CaptainID, date)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: failed to get blackout: %w", ErrInternal, err)
		}

		windows, err := uc.availabilityRepo.GetActiveWindows(txCtx, booking.CaptainID, date.Weekday())
		if err != nil {
			return fmt.Errorf("%w: failed to get windows: %w", ErrInternal, err)
		}

		if err := slots.ValidateStart(slots.StartCheck{
			Start:         req.Start,
			Location:      loc,
			AdvanceDays:   policy.EffectiveAdvanceDays(),
			Blackout:      blackout,
			Windows:       slots.WindowsOf(windows),
			DurationHours: tripType.DurationHours,
			Departures:    departures,
			Buffer:        policy.Buffer(),
			Now:           now,
		}); err != nil {
			uc.logger.Warn("RescheduleBooking: start %s rejected: %v", req.Start.Format(time.RFC3339), err)
			return err
		}

		end := req.Start.Add(tripType.Duration())

		// 2.4. Конфликты без учета самого бронирования
		check, err := uc.conflictChecker.Execute(txCtx, &check_conflicts.Request{
			CaptainID:        booking.CaptainID,
			VesselID:         booking.VesselID,
			Start:            req.Start,
			End:              end,
			BufferMinutes:    ptr.Ptr(policy.EffectiveBufferMinutes()),
			ExcludeBookingID: &booking.ID,
			Stage:            check_conflicts.StageWrite,
		})
		if err != nil {
			return fmt.Errorf("%w: conflict check failed: %w", ErrInternal, err)
		}
		if check.HasConflict {
			uc.logger.Warn("RescheduleBooking: new start for booking=%s is taken: %s", booking.ID, check.Reason)
			return ErrSlotNotAvailable
		}

		// 2.5. Сохраняем новое время и статус rescheduled
		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.Start, end); err != nil {
			return err
		}

		previousStatus = booking.Status
		booking.ScheduledStart = req.Start
		booking.ScheduledEnd = end
		booking.Status = domain.StatusRescheduled
		booking.UpdatedAt = now
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) || bookingRepo.IsConflict(err) {
			if uc.metrics != nil && !errors.Is(err, ErrSlotNotAvailable) {
				uc.metrics.ObserveConflict(check_conflicts.StageWrite)
			}
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrUnavailable) || errors.Is(err, domain.ErrAccessDenied) ||
			errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// 3. Событие после коммита
	event := domain.NewBookingEvent(domain.EventBookingRescheduled, result, uc.timeProvider.Now())
	event.PreviousStatus = &previousStatus
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("RescheduleBooking: failed to publish event for booking=%s: %v", result.ID, err)
	}

	uc.logger.Info("RescheduleBooking: booking=%s moved to %s", result.ID, result.ScheduledStart.Format(time.RFC3339))

	return &Response{Booking: result, PreviousStatus: previousStatus}, nil
}
