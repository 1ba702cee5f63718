package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Request модели

// WindowRequest еженедельное окно доступности
type WindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "06:00"
	EndTime   string `json:"endTime"`   // "14:00"
	IsActive  *bool  `json:"isActive,omitempty"`
}

// UpdateSettingsRequest запрос на обновление настроек доступности капитана
// Все поля опциональны - обновляются только переданные значения.
// Windows, если передан, полностью заменяет набор окон.
type UpdateSettingsRequest struct {
	UserID             uuid.UUID        `json:"-"`
	CaptainID          uuid.UUID        `json:"-"`
	Timezone           *string          `json:"timezone,omitempty"`
	BufferMinutes      *int             `json:"bufferMinutes,omitempty"`
	AdvanceBookingDays *int             `json:"advanceBookingDays,omitempty"`
	Hibernating        *bool            `json:"hibernating,omitempty"`
	Windows            *[]WindowRequest `json:"windows,omitempty"`
}

// AddBlackoutRequest запрос на закрытие даты
type AddBlackoutRequest struct {
	UserID    uuid.UUID `json:"-"`
	CaptainID uuid.UUID `json:"-"`
	Date      string    `json:"date"` // "2026-10-19"
	Reason    *string   `json:"reason,omitempty"`
}

// Response модели

// WindowResponse окно доступности
type WindowResponse struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	IsActive  bool      `json:"isActive"`
}

// BlackoutResponse закрытая дата
type BlackoutResponse struct {
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// SettingsResponse настройки доступности капитана с эффективными значениями
type SettingsResponse struct {
	CaptainID          uuid.UUID          `json:"captainId"`
	Timezone           string             `json:"timezone"`
	BufferMinutes      int                `json:"bufferMinutes"`
	AdvanceBookingDays int                `json:"advanceBookingDays"`
	Hibernating        bool               `json:"hibernating"`
	Windows            []WindowResponse   `json:"windows"`
	Blackouts          []BlackoutResponse `json:"blackouts"` // В пределах горизонта бронирования
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// Методы конвертации

// FromDomainWindows конвертирует окна в DTO
func FromDomainWindows(windows []*domain.AvailabilityWindow) []WindowResponse {
	resp := make([]WindowResponse, 0, len(windows))
	for _, w := range windows {
		resp = append(resp, WindowResponse{
			ID:        w.ID,
			DayOfWeek: int(w.DayOfWeek),
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			IsActive:  w.IsActive,
		})
	}
	return resp
}

// FromDomainBlackout конвертирует blackout в DTO
func FromDomainBlackout(b *domain.BlackoutDate) BlackoutResponse {
	return BlackoutResponse{
		Date:   b.Date.Format(domain.DateFormat),
		Reason: b.Reason,
	}
}

// FromDomainSettings собирает ответ из политики, окон и blackout дат
func FromDomainSettings(p *domain.CaptainPolicy, windows []*domain.AvailabilityWindow, blackouts []*domain.BlackoutDate) *SettingsResponse {
	resp := &SettingsResponse{
		CaptainID:          p.CaptainID,
		Timezone:           p.Timezone,
		BufferMinutes:      p.EffectiveBufferMinutes(),
		AdvanceBookingDays: p.EffectiveAdvanceDays(),
		Hibernating:        p.Hibernating,
		Windows:            FromDomainWindows(windows),
		Blackouts:          make([]BlackoutResponse, 0, len(blackouts)),
		UpdatedAt:          p.UpdatedAt,
	}
	for _, b := range blackouts {
		resp.Blackouts = append(resp.Blackouts, FromDomainBlackout(b))
	}
	return resp
}
