package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             uuid.UUID `json:"-"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID uuid.UUID `json:"-"`
	Status string    `json:"status"`
}

// GetGuestBookingsRequest запрос на получение бронирований гостя
type GetGuestBookingsRequest struct {
	UserID          uuid.UUID
	GuestID         uuid.UUID
	Status          *string
	IncludeInactive bool
}

// GetCaptainBookingsRequest запрос на получение бронирований капитана
type GetCaptainBookingsRequest struct {
	UserID          uuid.UUID
	CaptainID       uuid.UUID
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально), исключительно
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить отмененные и завершенные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCaptainBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CaptainID:       &r.CaptainID,
		From:            r.StartDate,
		To:              r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil && r.EndDate != nil && !r.StartDate.Before(*r.EndDate) {
		return filter, fmt.Errorf("%w: startDate must be before endDate", domain.ErrValidation)
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Явно запрошенный неактивный статус не должен отфильтровываться
		if !status.IsActive() {
			filter.IncludeInactive = true
		}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             uuid.UUID  `json:"id"`
	CaptainID      uuid.UUID  `json:"captainId"`
	VesselID       *uuid.UUID `json:"vesselId,omitempty"`
	TripTypeID     uuid.UUID  `json:"tripTypeId"`
	GuestID        uuid.UUID  `json:"guestId"`
	ScheduledStart time.Time  `json:"scheduledStart"`
	ScheduledEnd   time.Time  `json:"scheduledEnd"`
	Status         string     `json:"status"`
	PartySize      int        `json:"partySize"`
	Notes          *string    `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CaptainID:          b.CaptainID,
		VesselID:           b.VesselID,
		TripTypeID:         b.TripTypeID,
		GuestID:            b.GuestID,
		ScheduledStart:     b.ScheduledStart.UTC(),
		ScheduledEnd:       b.ScheduledEnd.UTC(),
		Status:             string(b.Status),
		PartySize:          b.PartySize,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
