package availability

import (
	"context"
	"sync"
	"time"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
)

// MemoryCache кеш доступности в памяти процесса. Реализация по умолчанию
// для развёртываний без Redis; записи протухают по freshness window и
// удаляются лениво при следующем обращении.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	slots     []domain.Slot
	groupKey  string
	expiresAt time.Time
}

// NewMemoryCache создает пустой кеш в памяти
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get возвращает закешированные слоты или ErrCacheMiss
func (c *MemoryCache) Get(_ context.Context, key Key) ([]domain.Slot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key.String()]
	if !ok {
		return nil, ErrCacheMiss
	}

	if !entry.expiresAt.After(c.now()) {
		// Ленивая эвикция протухшей записи
		delete(c.entries, key.String())
		return nil, ErrCacheMiss
	}

	// Копия, чтобы вызывающий не мог изменить содержимое кеша
	slots := make([]domain.Slot, len(entry.slots))
	copy(slots, entry.slots)
	return slots, nil
}

// Put сохраняет слоты с заданным freshness window
func (c *MemoryCache) Put(_ context.Context, key Key, slots []domain.Slot, freshnessWindow time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]domain.Slot, len(slots))
	copy(stored, slots)

	c.entries[key.String()] = memoryEntry{
		slots:     stored,
		groupKey:  key.GroupKey(),
		expiresAt: c.now().Add(freshnessWindow),
	}
	return nil
}

// Invalidate удаляет все записи группы (бизнес, дата)
func (c *MemoryCache) Invalidate(_ context.Context, businessID int64, date string) error {
	group := GroupKey(businessID, date)

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if entry.groupKey == group {
			delete(c.entries, key)
		}
	}
	return nil
}
