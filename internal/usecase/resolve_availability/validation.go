package resolve_availability

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidQuery)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidQuery)
	}

	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidQuery)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidQuery)
	}

	return nil
}

// validateDate проверяет, что дата подходит для запроса доступности
func validateDate(requestDate time.Time, now time.Time, maxAdvanceDays int) error {
	// Дата в прошлом - слоты не вычисляются
	if dateOnly(requestDate).Before(dateOnly(now)) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidQuery)
	}

	// maxAdvanceDays = 0 означает отсутствие ограничения глубины
	if maxAdvanceDays == 0 {
		return nil
	}

	maxDate := dateOnly(now).AddDate(0, 0, maxAdvanceDays)
	if dateOnly(requestDate).After(maxDate) {
		return fmt.Errorf("%w: date exceeds %d days in advance", ErrInvalidQuery, maxAdvanceDays)
	}

	return nil
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
