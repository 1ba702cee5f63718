package slots

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// lastCursorMinute последняя минута суток, с которой еще может стартовать курсор (23:59)
const lastCursorMinute = types.MinutesPerDay - 1

// ParseDepartures разбирает список времени отправления типа поездки.
// Любое нераспознанное значение делает конфигурацию некорректной.
func ParseDepartures(raw []string) ([]types.TimeString, error) {
	departures := make([]types.TimeString, 0, len(raw))
	for _, value := range raw {
		t, err := types.NewTimeStringFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid departure time %q: %v", domain.ErrValidation, value, err)
		}
		departures = append(departures, t)
	}
	return departures, nil
}

// Candidates возвращает локальные времена начала поездки внутри одного окна.
//
// Если задан список отправлений, берутся только те, что начинаются не раньше
// начала окна и заканчиваются не позже его конца. Иначе курсор идет от начала
// окна с шагом SlotStepMinutes, пока поездка помещается в окно и курсор не
// перешел 23:59. Граница конца окна включительная.
func Candidates(window Window, durationHours int, departures []types.TimeString) []types.TimeString {
	if durationHours <= 0 || window.Validate() != nil {
		return []types.TimeString{}
	}

	duration := durationHours * 60
	start, end := window.StartMinutes(), window.EndMinutes()
	result := make([]types.TimeString, 0)

	if len(departures) > 0 {
		for _, d := range departures {
			m := d.Minutes()
			if m < 0 {
				continue
			}
			if m >= start && m+duration <= end {
				result = append(result, d)
			}
		}
		sortTimes(result)
		return result
	}

	for cursor := start; cursor <= lastCursorMinute && cursor+duration <= end; cursor += domain.SlotStepMinutes {
		t, err := types.NewTimeStringFromMinutes(cursor)
		if err != nil {
			break
		}
		result = append(result, t)
	}

	return result
}

// CandidatesForDay объединяет окна дня и собирает кандидатов по всем окнам
// без повторов, по возрастанию
func CandidatesForDay(windows []Window, durationHours int, departures []types.TimeString) []types.TimeString {
	seen := make(map[int]struct{})
	result := make([]types.TimeString, 0)

	for _, w := range MergeWindows(windows) {
		for _, c := range Candidates(w, durationHours, departures) {
			if _, ok := seen[c.Minutes()]; ok {
				continue
			}
			seen[c.Minutes()] = struct{}{}
			result = append(result, c)
		}
	}

	sortTimes(result)
	return result
}

// IsCandidate проверяет, что start входит в список кандидатов дня
func IsCandidate(start types.TimeString, windows []Window, durationHours int, departures []types.TimeString) bool {
	for _, c := range CandidatesForDay(windows, durationHours, departures) {
		if c.Minutes() == start.Minutes() {
			return true
		}
	}
	return false
}

func sortTimes(times []types.TimeString) {
	sort.SliceStable(times, func(i, j int) bool {
		return times[i].Minutes() < times[j].Minutes()
	})
}
