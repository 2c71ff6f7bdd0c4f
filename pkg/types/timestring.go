package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// ErrInvalidTime возвращается при некорректном значении времени
var ErrInvalidTime = errors.New("types: invalid time value")

// TimeString время суток в пределах одного дня ("HH:MM").
// Хранится как количество минут от полуночи, что упрощает арифметику
// и сравнение интервалов. Значение 24:00 допустимо как время закрытия.
type TimeString struct {
	minutes int
}

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute()}
}

// NewTimeStringFromString парсит строку формата "HH:MM" (также принимает "HH:MM:SS")
func NewTimeStringFromString(s string) (TimeString, error) {
	var hours, minutes int

	// Отрезаем секунды, если они есть (Postgres возвращает TIME как "15:04:00")
	if parts := strings.SplitN(s, ":", 3); len(parts) >= 2 {
		s = parts[0] + ":" + parts[1]
	}

	if _, err := fmt.Sscanf(s, "%d:%d", &hours, &minutes); err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	total := hours*60 + minutes
	if total > MinutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	return TimeString{minutes: total}, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %d minutes", ErrInvalidTime, minutes)
	}
	return TimeString{minutes: minutes}, nil
}

// String возвращает время в формате "HH:MM"
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	return t.minutes
}

// AddMinutes возвращает время, сдвинутое на delta минут вперёд.
// Ошибка, если результат выходит за пределы суток.
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	result := t.minutes + delta
	if result < 0 || result > MinutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %s + %d minutes is out of day range", ErrInvalidTime, t, delta)
	}
	return TimeString{minutes: result}, nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal возвращает true, если времена совпадают с точностью до минуты
func (t TimeString) Equal(other TimeString) bool {
	return t.minutes == other.minutes
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeString) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON парсит строку "HH:MM"
func (t *TimeString) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan реализует sql.Scanner для чтения из колонки TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTime, src)
	}
}
