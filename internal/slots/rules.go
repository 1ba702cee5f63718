package slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/timezone"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

var (
	// ErrDateInPast запрошенная дата раньше сегодняшней в поясе капитана
	ErrDateInPast = fmt.Errorf("%w: date is in the past", domain.ErrValidation)

	// ErrBeyondAdvanceWindow дата дальше горизонта бронирования
	ErrBeyondAdvanceWindow = fmt.Errorf("%w: date is beyond the advance booking window", domain.ErrValidation)

	// ErrBlackoutDate дата закрыта капитаном
	ErrBlackoutDate = fmt.Errorf("%w: date is a blackout date", domain.ErrValidation)

	// ErrNoActiveWindow в этот день недели у капитана нет окон
	ErrNoActiveWindow = fmt.Errorf("%w: captain has no availability on this weekday", domain.ErrValidation)

	// ErrNotOffered время начала не входит в сетку кандидатов дня
	ErrNotOffered = fmt.Errorf("%w: start time is not an offered slot", domain.ErrValidation)

	// ErrTooSoon начало раньше now + buffer
	ErrTooSoon = fmt.Errorf("%w: start time is too soon", domain.ErrValidation)
)

// StartCheck данные для проверки выбранного гостем времени начала
type StartCheck struct {
	Start         time.Time
	Location      *time.Location
	AdvanceDays   int
	Blackout      *domain.BlackoutDate
	Windows       []Window // активные окна на день недели даты Start
	DurationHours int
	Departures    []types.TimeString
	Buffer        time.Duration
	Now           time.Time
}

// DateOf возвращает локальную календарную дату начала
func (c StartCheck) DateOf() time.Time {
	return timezone.DateOf(c.Start, c.Location)
}

// ValidateStart проверяет, что время начала было бы выдано генератором слотов
// без учета бронирований. Конфликты проверяются отдельно.
func ValidateStart(c StartCheck) error {
	date := c.DateOf()
	today := timezone.Today(c.Now, c.Location)

	summary := Classify(date, today, c.AdvanceDays, c.Blackout, len(c.Windows) > 0)
	switch {
	case summary.IsPast:
		return ErrDateInPast
	case summary.IsBeyondAdvanceWindow:
		return ErrBeyondAdvanceWindow
	case summary.IsBlackout:
		return ErrBlackoutDate
	case !summary.HasActiveWindow:
		return ErrNoActiveWindow
	}

	local := c.Start.In(c.Location)
	clock := types.NewTimeString(local)
	if local.Second() != 0 || local.Nanosecond() != 0 || !IsCandidate(clock, c.Windows, c.DurationHours, c.Departures) {
		return fmt.Errorf("%w: %s", ErrNotOffered, clock)
	}

	// Кандидат мог попасть в переход на летнее время: сверяем с нормализованным значением
	expected, err := timezone.ToInstantIn(date, clock, c.Location)
	if err != nil {
		return err
	}
	if !expected.Equal(c.Start) {
		return fmt.Errorf("%w: %s", ErrNotOffered, clock)
	}

	if c.Start.Before(c.Now.Add(c.Buffer)) {
		return ErrTooSoon
	}

	return nil
}
