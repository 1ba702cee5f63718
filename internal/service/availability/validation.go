package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/service/availability/models"
	"github.com/m04kA/SMC-CharterService/internal/slots"
	"github.com/m04kA/SMC-CharterService/pkg/timezone"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// validatePolicy проверяет итоговую политику после применения изменений
func validatePolicy(p *domain.CaptainPolicy) error {
	if _, err := timezone.LoadLocation(p.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q is not a valid IANA zone", ErrInvalidInput, p.Timezone)
	}

	if p.BufferMinutes != nil && (*p.BufferMinutes < domain.MinBufferMinutes || *p.BufferMinutes > domain.MaxBufferMinutes) {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if p.AdvanceBookingDays != nil && (*p.AdvanceBookingDays < domain.MinAdvanceBookingDays || *p.AdvanceBookingDays > domain.MaxAdvanceBookingDays) {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}

// toDomainWindows валидирует окна и конвертирует их в domain модели
func toDomainWindows(req []models.WindowRequest) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0, len(req))

	for i, w := range req {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: windows[%d].dayOfWeek must be between 0 and 6", ErrInvalidInput, i)
		}

		start, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: windows[%d].startTime: %v", ErrInvalidInput, i, err)
		}
		end, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: windows[%d].endTime: %v", ErrInvalidInput, i, err)
		}

		if err := (slots.Window{Start: start, End: end}).Validate(); err != nil {
			return nil, fmt.Errorf("%w: windows[%d]: %v", ErrInvalidInput, i, err)
		}

		active := true
		if w.IsActive != nil {
			active = *w.IsActive
		}

		windows = append(windows, &domain.AvailabilityWindow{
			DayOfWeek: time.Weekday(w.DayOfWeek),
			StartTime: start,
			EndTime:   end,
			IsActive:  active,
		})
	}

	return windows, nil
}
