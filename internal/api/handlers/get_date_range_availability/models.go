package get_date_range_availability

import (
	"github.com/m04kA/SMC-CharterService/internal/domain"
	getDateRange "github.com/m04kA/SMC-CharterService/internal/usecase/get_date_range_availability"
)

type DateRangeResponse struct {
	CaptainID         string     `json:"captainId"`
	Timezone          string     `json:"timezone,omitempty"`
	Days              int        `json:"days"`
	Dates             []DateInfo `json:"dates"`
	UnavailableReason *string    `json:"unavailableReason,omitempty"`
}

type DateInfo struct {
	Date                  string  `json:"date"`
	DayOfWeek             int     `json:"dayOfWeek"`
	HasAvailability       bool    `json:"hasAvailability"`
	IsBlackout            bool    `json:"isBlackout"`
	IsPast                bool    `json:"isPast"`
	IsBeyondAdvanceWindow bool    `json:"isBeyondAdvanceWindow"`
	HasActiveWindow       bool    `json:"hasActiveWindow"`
	BlackoutReason        *string `json:"blackoutReason,omitempty"`
}

func FromUseCaseResponse(resp *getDateRange.Response) *DateRangeResponse {
	dates := make([]DateInfo, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = DateInfo{
			Date:                  d.Date.Format(domain.DateFormat),
			DayOfWeek:             int(d.DayOfWeek),
			HasAvailability:       d.HasAvailability,
			IsBlackout:            d.IsBlackout,
			IsPast:                d.IsPast,
			IsBeyondAdvanceWindow: d.IsBeyondAdvanceWindow,
			HasActiveWindow:       d.HasActiveWindow,
			BlackoutReason:        d.BlackoutReason,
		}
	}

	return &DateRangeResponse{
		CaptainID: resp.CaptainID.String(),
		Timezone:  resp.Timezone,
		Days:      resp.Days,
		Dates:     dates,
	}
}

func UnavailableResponse(captainID string, kind domain.UnavailableKind) *DateRangeResponse {
	reason := string(kind)
	return &DateRangeResponse{
		CaptainID:         captainID,
		Dates:             []DateInfo{},
		UnavailableReason: &reason,
	}
}
