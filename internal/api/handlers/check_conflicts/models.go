package check_conflicts

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	checkConflicts "github.com/m04kA/SMC-CharterService/internal/usecase/check_conflicts"
)

// CheckConflictsRequest HTTP request model
type CheckConflictsRequest struct {
	Start            time.Time  `json:"start"` // RFC 3339
	End              time.Time  `json:"end"`
	VesselID         *uuid.UUID `json:"vesselId,omitempty"`
	BufferMinutes    *int       `json:"bufferMinutes,omitempty"`
	ExcludeBookingID *uuid.UUID `json:"excludeBookingId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *CheckConflictsRequest) ToUseCaseRequest(captainID uuid.UUID) *checkConflicts.Request {
	return &checkConflicts.Request{
		CaptainID:        captainID,
		VesselID:         r.VesselID,
		Start:            r.Start,
		End:              r.End,
		BufferMinutes:    r.BufferMinutes,
		ExcludeBookingID: r.ExcludeBookingID,
		Stage:            checkConflicts.StageAdvisory,
	}
}

// CheckConflictsResponse HTTP response model
type CheckConflictsResponse struct {
	HasConflict         bool                 `json:"hasConflict"`
	Reason              string               `json:"reason,omitempty"`
	BufferMinutes       int                  `json:"bufferMinutes"`
	ConflictingBookings []ConflictingBooking `json:"conflictingBookings"`
}

type ConflictingBooking struct {
	ID             uuid.UUID            `json:"id"`
	VesselID       *uuid.UUID           `json:"vesselId,omitempty"`
	ScheduledStart string               `json:"scheduledStart"`
	ScheduledEnd   string               `json:"scheduledEnd"`
	Status         domain.BookingStatus `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Гость в ответе не раскрывается.
func FromUseCaseResponse(resp *checkConflicts.Response) *CheckConflictsResponse {
	bookings := make([]ConflictingBooking, len(resp.ConflictingBookings))
	for i, b := range resp.ConflictingBookings {
		bookings[i] = ConflictingBooking{
			ID:             b.ID,
			VesselID:       b.VesselID,
			ScheduledStart: b.ScheduledStart.UTC().Format(time.RFC3339),
			ScheduledEnd:   b.ScheduledEnd.UTC().Format(time.RFC3339),
			Status:         b.Status,
		}
	}

	return &CheckConflictsResponse{
		HasConflict:         resp.HasConflict,
		Reason:              resp.Reason,
		BufferMinutes:       resp.BufferMinutes,
		ConflictingBookings: bookings,
	}
}
