package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CharterService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CaptainID         string          `json:"captainId"`
	TripTypeID        string          `json:"tripTypeId"`
	Date              string          `json:"date"`
	Timezone          string          `json:"timezone,omitempty"`
	Slots             []AvailableSlot `json:"slots"`
	DateInfo          *DateInfo       `json:"dateInfo,omitempty"`
	UnavailableReason *string         `json:"unavailableReason,omitempty"`
}

// AvailableSlot абсолютный интервал слота (UTC, RFC 3339)
type AvailableSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DateInfo причина, по которой на дату есть или нет слотов
type DateInfo struct {
	DayOfWeek             int     `json:"dayOfWeek"`
	HasAvailability       bool    `json:"hasAvailability"`
	IsBlackout            bool    `json:"isBlackout"`
	IsPast                bool    `json:"isPast"`
	IsBeyondAdvanceWindow bool    `json:"isBeyondAdvanceWindow"`
	HasActiveWindow       bool    `json:"hasActiveWindow"`
	BlackoutReason        *string `json:"blackoutReason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Start: slot.Start.UTC().Format(time.RFC3339),
			End:   slot.End.UTC().Format(time.RFC3339),
		}
	}

	info := resp.DateInfo
	return &AvailableSlotsResponse{
		CaptainID:  resp.CaptainID.String(),
		TripTypeID: resp.TripTypeID.String(),
		Date:       resp.Date.Format(domain.DateFormat),
		Timezone:   resp.Timezone,
		Slots:      slots,
		DateInfo: &DateInfo{
			DayOfWeek:             int(info.DayOfWeek),
			HasAvailability:       info.HasAvailability,
			IsBlackout:            info.IsBlackout,
			IsPast:                info.IsPast,
			IsBeyondAdvanceWindow: info.IsBeyondAdvanceWindow,
			HasActiveWindow:       info.HasActiveWindow,
			BlackoutReason:        info.BlackoutReason,
		},
	}
}

// UnavailableResponse пустой ответ для недоступного капитана
func UnavailableResponse(req *getAvailableSlots.Request, kind domain.UnavailableKind) *AvailableSlotsResponse {
	reason := string(kind)
	return &AvailableSlotsResponse{
		CaptainID:         req.CaptainID,
		TripTypeID:        req.TripTypeID,
		Date:              req.Date,
		Slots:             []AvailableSlot{},
		UnavailableReason: &reason,
	}
}
