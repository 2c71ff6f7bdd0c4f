package resolve_availability

import (
	"time"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
)

// Request модель запроса на резолюцию доступности
type Request struct {
	BusinessID     int64     // ID бизнеса
	ServiceID      int64     // ID услуги
	Date           time.Time // Дата, на которую запрашиваются слоты (без времени)
	ProfessionalID *int64    // ID мастера (nil = любой мастер, по настроенной политике)
}

// Query строит доменный запрос слотов
func (r *Request) Query() *domain.SlotQuery {
	return &domain.SlotQuery{
		BusinessID:     r.BusinessID,
		ServiceID:      r.ServiceID,
		Date:           r.Date,
		ProfessionalID: r.ProfessionalID,
	}
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date           time.Time     // Дата, на которую запрашивались слоты
	BusinessID     int64         // ID бизнеса
	ServiceID      int64         // ID услуги
	ProfessionalID *int64        // ID мастера (если был указан в запросе)
	Slots          []domain.Slot // Упорядоченный список доступных слотов
}

// Config настройки резолвера, приходящие из конфигурации сервиса
type Config struct {
	// FreshnessWindow время жизни закешированного результата
	FreshnessWindow time.Duration
	// UnassignedPolicy политика для запросов без указанного мастера
	UnassignedPolicy domain.UnassignedPolicy
	// MaxAdvanceDays максимальная глубина бронирования (0 = без ограничения)
	MaxAdvanceDays int
}
