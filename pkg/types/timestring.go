package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 24 * 60

	timeLayout = "15:04"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// Допустимые форматы входного времени.
// Списки времени отправления хранятся в 12-часовом формате ("6:00 AM").
var parseLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// TimeString локальное время суток в формате HH:MM (00:00 - 23:59)
// Не содержит информации о дате и часовом поясе
type TimeString string

// NewTimeString создает TimeString из часов и минут time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку времени
// Поддерживает "HH:MM", "HH:MM:SS" и 12-часовой формат ("6:00 AM", "12:30 pm")
func NewTimeStringFromString(s string) (TimeString, error) {
	value := strings.ToUpper(strings.TrimSpace(s))
	if value == "" {
		return "", ErrInvalidTimeString
	}

	for _, layout := range parseLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return NewTimeString(parsed), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// MustTimeString парсит строку времени и паникует при ошибке (для констант и тестов)
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate проверяет, что значение в формате HH:MM и в пределах суток
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
// Для некорректного значения возвращает -1
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// Hour возвращает часы
func (t TimeString) Hour() int {
	return t.Minutes() / 60
}

// Minute возвращает минуты
func (t TimeString) Minute() int {
	return t.Minutes() % 60
}

// AddMinutes прибавляет минуты
// Возвращает ErrTimeOverflow, если результат выходит за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(t.Minutes() + minutes)
}

// IsBefore проверяет, что время строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление HH:MM
func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner (колонки типа TIME приходят как "HH:MM:SS")
func (t *TimeString) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, value)
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
