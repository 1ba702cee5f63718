// Package slots содержит чистую арифметику слотов: объединение окон доступности,
// генерацию кандидатов по локальному времени и перевод их в абсолютные интервалы.
// Пакет не ходит в хранилище и не знает о текущем пользователе.
package slots

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// Window локальное окно доступности [Start, End] в пределах одних суток
type Window struct {
	Start types.TimeString
	End   types.TimeString
}

// StartMinutes возвращает начало окна в минутах с начала суток
func (w Window) StartMinutes() int {
	return w.Start.Minutes()
}

// EndMinutes возвращает конец окна в минутах с начала суток
func (w Window) EndMinutes() int {
	return w.End.Minutes()
}

// Validate проверяет, что окно корректно и не пустое
func (w Window) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: window start: %v", domain.ErrValidation, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: window end: %v", domain.ErrValidation, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: window start %s must be before end %s", domain.ErrValidation, w.Start, w.End)
	}
	return nil
}

// WindowsOf преобразует активные окна капитана в локальные окна.
// Неактивные окна пропускаются.
func WindowsOf(windows []*domain.AvailabilityWindow) []Window {
	result := make([]Window, 0, len(windows))
	for _, w := range windows {
		if w == nil || !w.IsActive {
			continue
		}
		result = append(result, Window{Start: w.StartTime, End: w.EndTime})
	}
	return result
}

// MergeWindows объединяет пересекающиеся и смежные окна одного дня.
// Некорректные окна (start >= end) отбрасываются. Результат отсортирован по началу.
func MergeWindows(windows []Window) []Window {
	valid := make([]Window, 0, len(windows))
	for _, w := range windows {
		if w.Validate() == nil {
			valid = append(valid, w)
		}
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].StartMinutes() < valid[j].StartMinutes()
	})

	merged := make([]Window, 0, len(valid))
	for _, w := range valid {
		last := len(merged) - 1
		if last >= 0 && w.StartMinutes() <= merged[last].EndMinutes() {
			if w.EndMinutes() > merged[last].EndMinutes() {
				merged[last].End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}

	return merged
}
