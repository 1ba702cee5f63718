package get_date_range_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/slots"
	"github.com/m04kA/SMC-CharterService/pkg/timezone"
)

// UseCase грубый обзор доступности по датам для календаря.
// Учитывает только наличие окон по дням недели и blackout даты:
// бронирования и буфер на сегодня не проверяются.
type UseCase struct {
	captainRepo      CaptainRepository
	availabilityRepo AvailabilityRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(captainRepo CaptainRepository, availabilityRepo AvailabilityRepository, logger Logger) *UseCase {
	return &UseCase{
		captainRepo:      captainRepo,
		availabilityRepo: availabilityRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDateRangeAvailability: captain=%s, days=%d", req.CaptainID, req.Days)

	// 1. Валидация
	captainID, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetDateRangeAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Политика капитана
	policy, err := uc.captainRepo.GetPolicy(ctx, captainID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetDateRangeAvailability: captain=%s not found", captainID)
			return nil, ErrCaptainNotFound
		}
		uc.logger.Error("GetDateRangeAvailability: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}

	if policy.Hibernating {
		uc.logger.Info("GetDateRangeAvailability: captain=%s is hibernating", captainID)
		return nil, &domain.UnavailableError{Kind: domain.UnavailableHibernating}
	}

	loc, err := timezone.LoadLocation(policy.Timezone)
	if err != nil {
		uc.logger.Error("GetDateRangeAvailability: captain=%s has invalid timezone %q: %v", captainID, policy.Timezone, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Обрезаем диапазон до горизонта бронирования: today + advanceDays включительно
	advanceDays := policy.EffectiveAdvanceDays()
	days := req.Days
	if days > advanceDays+1 {
		days = advanceDays + 1
	}

	today := timezone.Today(uc.timeProvider.Now(), loc)
	last := today.AddDate(0, 0, days-1)

	// 4. Дни недели с окнами и blackout даты диапазона
	weekdays, err := uc.availabilityRepo.GetActiveWeekdays(ctx, captainID)
	if err != nil {
		uc.logger.Error("GetDateRangeAvailability: failed to get weekdays: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekdays: %v", ErrInternal, err)
	}

	blackouts, err := uc.availabilityRepo.GetBlackoutsInRange(ctx, captainID, today, last)
	if err != nil {
		uc.logger.Error("GetDateRangeAvailability: failed to get blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
	}

	byDate := make(map[string]*domain.BlackoutDate, len(blackouts))
	for _, b := range blackouts {
		byDate[b.Date.Format(domain.DateFormat)] = b
	}

	// 5. Сводка по каждой дате
	dates := make([]domain.DateAvailabilitySummary, 0, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i)
		blackout := byDate[date.Format(domain.DateFormat)]
		dates = append(dates, slots.Classify(date, today, advanceDays, blackout, weekdays[date.Weekday()]))
	}

	return &Response{
		CaptainID: captainID,
		Timezone:  policy.Timezone,
		Days:      days,
		Dates:     dates,
	}, nil
}
