package get_captain_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// from и to принимаются в RFC 3339, to исключительно.
func ToServiceRequest(
	captainID uuid.UUID,
	userID uuid.UUID,
	fromStr string,
	toStr string,
	statusStr string,
	includeInactiveStr string,
) (*models.GetCaptainBookingsRequest, error) {
	req := &models.GetCaptainBookingsRequest{
		UserID:    userID,
		CaptainID: captainID,
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.EndDate = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
