package get_forecast

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-CharterService/internal/integrations/weather"
)

// ToQuery разбирает query параметры lat, lon и date
func ToQuery(latStr, lonStr, date string) (weather.Query, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return weather.Query{}, fmt.Errorf("invalid lat value: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return weather.Query{}, fmt.Errorf("invalid lon value: %w", err)
	}
	return weather.Query{Latitude: lat, Longitude: lon, Date: date}, nil
}
