package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
)

var (
	// ErrCacheMiss возвращается, когда в кеше нет свежей записи по ключу
	ErrCacheMiss = errors.New("availability.cache: cache miss")

	// ErrCacheUnavailable возвращается при ошибках нижележащего хранилища
	ErrCacheUnavailable = errors.New("availability.cache: cache unavailable")
)

// Key ключ кеша доступности. Полностью определяет результат резолюции:
// (бизнес, услуга, дата, мастер-или-отсутствует).
type Key struct {
	BusinessID     int64
	ServiceID      int64
	Date           string // YYYY-MM-DD
	ProfessionalID *int64
}

// NewKey строит ключ кеша из запроса слотов
func NewKey(query *domain.SlotQuery) Key {
	return Key{
		BusinessID:     query.BusinessID,
		ServiceID:      query.ServiceID,
		Date:           query.Date.Format(domain.DateFormat),
		ProfessionalID: query.ProfessionalID,
	}
}

// String возвращает строковое представление ключа ("-" = мастер не указан)
func (k Key) String() string {
	professional := "-"
	if k.ProfessionalID != nil {
		professional = fmt.Sprintf("%d", *k.ProfessionalID)
	}
	return fmt.Sprintf("availability:%d:%d:%s:%s", k.BusinessID, k.ServiceID, k.Date, professional)
}

// GroupKey возвращает ключ группы (бизнес, дата). Инвалидация сбрасывает
// группу целиком: новая или отменённая запись смещает доступность для всех
// услуг и мастеров бизнеса в этот день.
func (k Key) GroupKey() string {
	return GroupKey(k.BusinessID, k.Date)
}

// GroupKey строит ключ группы инвалидации для пары (бизнес, дата)
func GroupKey(businessID int64, date string) string {
	return fmt.Sprintf("availability-group:%d:%s", businessID, date)
}

// Cache короткоживущий кеш результатов резолюции доступности.
// Get возвращает ErrCacheMiss и для отсутствующих, и для протухших записей;
// протухшие записи удаляются лениво при обращении.
type Cache interface {
	Get(ctx context.Context, key Key) ([]domain.Slot, error)
	Put(ctx context.Context, key Key, slots []domain.Slot, freshnessWindow time.Duration) error
	Invalidate(ctx context.Context, businessID int64, date string) error
}
