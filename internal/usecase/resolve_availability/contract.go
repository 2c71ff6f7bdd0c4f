package resolve_availability

import (
	"context"
	"time"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	availabilityCache "github.com/glowdesk/GD-AvailabilityService/internal/infra/cache/availability"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetBusinessSchedule(ctx context.Context, businessID int64) (*domain.BusinessSchedule, error)
	GetProfessionalSchedule(ctx context.Context, professionalID int64) (*domain.ProfessionalSchedule, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей клиентов
type AppointmentRepository interface {
	// ListForDate получает активные записи бизнеса на дату
	// (для конкретного мастера - его записи плюс записи уровня бизнеса)
	ListForDate(ctx context.Context, businessID int64, professionalID *int64, date time.Time) ([]*domain.Appointment, error)
	// ListProfessionals получает мастеров бизнеса, выполняющих услугу
	ListProfessionals(ctx context.Context, businessID, serviceID int64) ([]int64, error)
}

// SlotEngineClient интерфейс клиента движка расчёта слотов (primary path)
type SlotEngineClient interface {
	ComputeSlots(ctx context.Context, query *domain.SlotQuery) ([]domain.Slot, error)
}

// Cache интерфейс кеша доступности
type Cache interface {
	Get(ctx context.Context, key availabilityCache.Key) ([]domain.Slot, error)
	Put(ctx context.Context, key availabilityCache.Key, slots []domain.Slot, freshnessWindow time.Duration) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования).
// Возвращает "сейчас" в локальном времени бизнеса.
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder интерфейс для метрик резолвера
type MetricsRecorder interface {
	IncCacheHit()
	IncCacheMiss()
	IncSourceSuccess(source string)
	IncSourceFailure(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
