package weather

import (
	"math"
	"time"
)

// CoordinatePrecision количество знаков после запятой в координатах запроса (около 1 км)
const CoordinatePrecision = 2

// Forecast прогноз погоды в точке на дату
type Forecast struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Date             string  `json:"date"` // "2026-10-19"
	Summary          string  `json:"summary"`
	WindSpeedKnots   float64 `json:"windSpeedKnots"`
	WindGustKnots    float64 `json:"windGustKnots"`
	WaveHeightMeters float64 `json:"waveHeightMeters"`
	PrecipitationMM  float64 `json:"precipitationMm"`
	Advisory         *string `json:"advisory,omitempty"` // Предупреждение для малых судов и т.п.
}

// Query параметры запроса прогноза
type Query struct {
	Latitude  float64
	Longitude float64
	Date      string
}

// Rounded округляет координаты до CoordinatePrecision знаков
func (q Query) Rounded() Query {
	scale := math.Pow10(CoordinatePrecision)
	q.Latitude = math.Round(q.Latitude*scale) / scale
	q.Longitude = math.Round(q.Longitude*scale) / scale
	return q
}

// CachedForecast прогноз с отметкой свежести
type CachedForecast struct {
	Forecast  *Forecast `json:"forecast"`
	FetchedAt time.Time `json:"fetchedAt"`
	Stale     bool      `json:"stale"`
}
