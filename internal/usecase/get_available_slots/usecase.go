package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/slots"
	"github.com/m04kA/SMC-CharterService/pkg/timezone"
)

// UseCase use case для получения доступных слотов капитана на дату.
// Результат всегда считается заново: кеширования слотов нет.
type UseCase struct {
	bookingRepo      BookingRepository
	captainRepo      CaptainRepository
	availabilityRepo AvailabilityRepository
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	captainRepo CaptainRepository,
	availabilityRepo AvailabilityRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		captainRepo:      captainRepo,
		availabilityRepo: availabilityRepo,
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

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: captain=%s, tripType=%s, date=%s", req.CaptainID, req.TripTypeID, req.Date)

	// 1. Валидация входных данных
	in, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем политику капитана
	policy, err := uc.captainRepo.GetPolicy(ctx, in.captainID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: captain=%s not found", in.captainID)
			return nil, ErrCaptainNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get policy for captain=%s: %v", in.captainID, err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}

	if policy.Hibernating {
		uc.logger.Info("GetAvailableSlots: captain=%s is hibernating", in.captainID)
		uc.observe(outcomeHibernating, "", 0)
		return nil, &domain.UnavailableError{Kind: domain.UnavailableHibernating}
	}

	loc, err := timezone.LoadLocation(policy.Timezone)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: captain=%s has invalid timezone %q: %v", in.captainID, policy.Timezone, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Получаем тип поездки и проверяем владельца
	tripType, err := uc.captainRepo.GetTripType(ctx, in.tripTypeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: trip type=%s not found", in.tripTypeID)
			return nil, ErrTripTypeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get trip type=%s: %v", in.tripTypeID, err)
		return nil, fmt.Errorf("%w: failed to get trip type: %v", ErrInternal, err)
	}
	if !tripType.IsOwnedBy(in.captainID) {
		uc.logger.Warn("GetAvailableSlots: trip type=%s does not belong to captain=%s", in.tripTypeID, in.captainID)
		return nil, ErrTripTypeNotFound
	}

	departures, err := slots.ParseDepartures(tripType.DepartureTimes)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: trip type=%s: %v", in.tripTypeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTripType, err)
	}

	response := &Response{
		CaptainID:  in.captainID,
		TripTypeID: in.tripTypeID,
		Date:       in.date,
		Timezone:   policy.Timezone,
		Slots:      []domain.Slot{},
	}

	// 5. Получаем активные окна на день недели
	activeWindows, err := uc.availabilityRepo.GetActiveWindows(ctx, in.captainID, in.date.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}
	windows := slots.WindowsOf(activeWindows)

	// 6. Классифицируем дату: прошлое, горизонт, blackout
	today := timezone.Today(now, loc)
	summary := slots.Classify(in.date, today, policy.EffectiveAdvanceDays(), nil, len(windows) > 0)

	if summary.IsPast {
		response.DateInfo = closedSummary(summary)
		uc.observe(outcomePast, "", 0)
		return response, nil
	}
	if summary.IsBeyondAdvanceWindow {
		response.DateInfo = closedSummary(summary)
		uc.observe(outcomeBeyondWindow, "", 0)
		return response, nil
	}

	blackout, err := uc.availabilityRepo.GetBlackout(ctx, in.captainID, in.date)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get blackout: %v", err)
		return nil, fmt.Errorf("%w: failed to get blackout: %v", ErrInternal, err)
	}
	if blackout != nil {
		summary.IsBlackout = true
		summary.BlackoutReason = blackout.Reason
		response.DateInfo = closedSummary(summary)
		uc.logger.Info("GetAvailableSlots: %s is a blackout date for captain=%s", req.Date, in.captainID)
		uc.observe(outcomeBlackout, "", 0)
		return response, nil
	}

	if len(windows) == 0 {
		response.DateInfo = closedSummary(summary)
		uc.observe(outcomeClosed, "", 0)
		return response, nil
	}

	// 7. Получаем активные бронирования вокруг даты (сутки + буфер)
	buffer := policy.Buffer()
	lookup := slots.LookupRange(in.date, loc, buffer)
	bookings, err := uc.bookingRepo.GetActiveOverlapping(ctx, in.captainID, tripType.VesselID, lookup, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Генерируем слоты и отсекаем конфликты и слишком ранние
	result, err := slots.Generate(slots.DayInput{
		Date:          in.date,
		Location:      loc,
		Windows:       windows,
		DurationHours: tripType.DurationHours,
		Departures:    departures,
		Bookings:      bookings,
		Buffer:        buffer,
		Now:           now,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	summary.HasAvailability = len(result) > 0
	response.Slots = result
	response.DateInfo = summary

	mode := modeFixedInterval
	if len(departures) > 0 {
		mode = modeDepartures
	}
	uc.observe(outcomeOpen, mode, len(result))

	uc.logger.Info("GetAvailableSlots: generated %d slots for captain=%s, tripType=%s, date=%s (bookings=%d)",
		len(result), in.captainID, in.tripTypeID, req.Date, len(bookings))

	return response, nil
}

func (uc *UseCase) observe(outcome, mode string, n int) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlots(outcome, mode, n)
	}
}

func closedSummary(s domain.DateAvailabilitySummary) domain.DateAvailabilitySummary {
	s.HasAvailability = false
	return s
}
