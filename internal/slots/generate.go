package slots

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/timezone"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// DayInput данные для расчета слотов на одну локальную дату
type DayInput struct {
	Date          time.Time // календарная дата (UTC полночь)
	Location      *time.Location
	Windows       []Window
	DurationHours int
	Departures    []types.TimeString
	Bookings      []*domain.Booking // бронирования капитана вокруг даты
	Buffer        time.Duration
	Now           time.Time
}

// Generate строит доступные слоты на дату.
// Кандидаты переводятся в абсолютное время, несуществующие локальные времена
// пропускаются. Затем отбрасываются слоты,
// начинающиеся раньше now+buffer, и слоты, пересекающиеся с активными
// бронированиями с учетом буфера. Результат отсортирован по началу.
func Generate(in DayInput) ([]domain.Slot, error) {
	duration := time.Duration(in.DurationHours) * time.Hour
	cutoff := in.Now.Add(in.Buffer)

	result := make([]domain.Slot, 0)
	for _, candidate := range CandidatesForDay(in.Windows, in.DurationHours, in.Departures) {
		start, err := timezone.ToInstantIn(in.Date, candidate, in.Location)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", candidate, err)
		}
		// Время попало в переход на летнее время: такого локального времени нет
		if types.NewTimeString(start.In(in.Location)).Minutes() != candidate.Minutes() {
			continue
		}
		slot := domain.Slot{Start: start, End: start.Add(duration)}

		if slot.Start.Before(cutoff) {
			continue
		}
		if domain.HasConflict(slot.Interval(), in.Bookings, in.Buffer) {
			continue
		}

		result = append(result, slot)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})

	return result, nil
}

// LookupRange возвращает абсолютный интервал, в котором нужно искать
// бронирования для даты: локальные сутки, расширенные на буфер с обеих сторон
func LookupRange(date time.Time, loc *time.Location, buffer time.Duration) domain.Interval {
	start, end := timezone.DayBounds(date, loc)
	return domain.Interval{Start: start.Add(-buffer), End: end.Add(buffer)}
}

// Classify заполняет сводку по дате без учета бронирований.
// today и date календарные даты в часовом поясе капитана.
// Дата за горизонтом: date > today + advanceDays.
func Classify(date, today time.Time, advanceDays int, blackout *domain.BlackoutDate, hasActiveWindow bool) domain.DateAvailabilitySummary {
	summary := domain.DateAvailabilitySummary{
		Date:            date,
		DayOfWeek:       date.Weekday(),
		IsPast:          date.Before(today),
		HasActiveWindow: hasActiveWindow,
	}

	horizon := today.AddDate(0, 0, advanceDays)
	summary.IsBeyondAdvanceWindow = date.After(horizon)

	if blackout != nil {
		summary.IsBlackout = true
		summary.BlackoutReason = blackout.Reason
	}

	summary.HasAvailability = !summary.IsClosed()
	return summary
}
