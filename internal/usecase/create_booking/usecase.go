package create_booking

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

// UseCase use case для создания бронирования.
// Проверка слота и вставка выполняются атомарно в сериализуемой транзакции
// под advisory блокировкой капитана.
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

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: guest=%s, captain=%s, tripType=%s, start=%s",
		req.GuestID, req.CaptainID, req.TripTypeID, req.Start.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Проверка и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем капитана: параллельные записи ждут друг друга
		if err := uc.captainRepo.LockCaptain(txCtx, req.CaptainID); err != nil {
			uc.logger.Error("CreateBooking: failed to lock captain=%s: %v", req.CaptainID, err)
			return fmt.Errorf("%w: failed to lock captain: %w", ErrInternal, err)
		}

		// 3.2. Политика капитана
		policy, err := uc.captainRepo.GetPolicy(txCtx, req.CaptainID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("CreateBooking: captain=%s not found", req.CaptainID)
				return ErrCaptainNotFound
			}
			uc.logger.Error("CreateBooking: failed to get policy: %v", err)
			return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
		}
		if policy.Hibernating {
			uc.logger.Warn("CreateBooking: captain=%s is hibernating", req.CaptainID)
			return &domain.UnavailableError{Kind: domain.UnavailableHibernating}
		}

		loc, err := timezone.LoadLocation(policy.Timezone)
		if err != nil {
			uc.logger.Error("CreateBooking: captain=%s has invalid timezone %q: %v", req.CaptainID, policy.Timezone, err)
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		// 3.3. Тип поездки
		tripType, err := uc.captainRepo.GetTripType(txCtx, req.TripTypeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("CreateBooking: trip type=%s not found", req.TripTypeID)
				return ErrTripTypeNotFound
			}
			uc.logger.Error("CreateBooking: failed to get trip type: %v", err)
			return fmt.Errorf("%w: failed to get trip type: %w", ErrInternal, err)
		}
		if !tripType.IsOwnedBy(req.CaptainID) {
			uc.logger.Warn("CreateBooking: trip type=%s does not belong to captain=%s", req.TripTypeID, req.CaptainID)
			return ErrTripTypeNotFound
		}

		departures, err := slots.ParseDepartures(tripType.DepartureTimes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTripType, err)
		}

		// 3.4. Окна и blackout на локальную дату начала
		date := timezone.DateOf(req.Start, loc)

		blackout, err := uc.availabilityRepo.GetBlackout(txCtx, req.CaptainID, date)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			uc.logger.Error("CreateBooking: failed to get blackout: %v", err)
			return fmt.Errorf("%w: failed to get blackout: %w", ErrInternal, err)
		}

		windows, err := uc.availabilityRepo.GetActiveWindows(txCtx, req.CaptainID, date.Weekday())
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get windows: %v", err)
			return fmt.Errorf("%w: failed to get windows: %w", ErrInternal, err)
		}

		// 3.5. Повторно применяем правила генератора слотов
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
			uc.logger.Warn("CreateBooking: start %s rejected: %v", req.Start.Format(time.RFC3339), err)
			return err
		}

		end := req.Start.Add(tripType.Duration())

		// 3.6. Повторная проверка конфликтов внутри транзакции
		check, err := uc.conflictChecker.Execute(txCtx, &check_conflicts.Request{
			CaptainID:     req.CaptainID,
			VesselID:      tripType.VesselID,
			Start:         req.Start,
			End:           end,
			BufferMinutes: ptr.Ptr(policy.EffectiveBufferMinutes()),
			Stage:         check_conflicts.StageWrite,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %w", ErrInternal, err)
		}
		if check.HasConflict {
			uc.logger.Warn("CreateBooking: slot %s for captain=%s is taken: %s",
				req.Start.Format(time.RFC3339), req.CaptainID, check.Reason)
			return ErrSlotNotAvailable
		}

		// 3.7. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ID:             uuid.New(),
			CaptainID:      req.CaptainID,
			VesselID:       tripType.VesselID,
			TripTypeID:     req.TripTypeID,
			GuestID:        req.GuestID,
			ScheduledStart: req.Start,
			ScheduledEnd:   end,
			Status:         domain.StatusPendingDeposit,
			PartySize:      req.PartySize,
			Notes:          req.Notes,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигранная гонка: exclusion constraint или сбой сериализации при коммите
		if errors.Is(err, domain.ErrConflict) || bookingRepo.IsConflict(err) {
			if uc.metrics != nil && !errors.Is(err, ErrSlotNotAvailable) {
				uc.metrics.ObserveConflict(check_conflicts.StageWrite)
			}
			uc.logger.Warn("CreateBooking: conflict for captain=%s at %s: %v", req.CaptainID, req.Start.Format(time.RFC3339), err)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnavailable) {
			return nil, err
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.ObserveBookingCreated(string(result.Status))
	}

	// 4. Событие публикуется после коммита, ошибка публикации не отменяет бронирование
	if err := uc.publisher.Publish(ctx, domain.NewBookingEvent(domain.EventBookingCreated, result, uc.timeProvider.Now())); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking=%s: %v", result.ID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{Booking: result}, nil
}

