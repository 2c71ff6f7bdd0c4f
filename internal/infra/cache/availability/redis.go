package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
)

// RedisCache кеш доступности в Redis. Используется, когда несколько
// инстансов сервиса должны разделять один кеш. Для каждой записи ведётся
// SET членов группы (бизнес, дата), через который работает инвалидация.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache создает кеш поверх готового Redis-клиента
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get возвращает закешированные слоты или ErrCacheMiss.
// Протухание обеспечивает TTL самого Redis.
func (c *RedisCache) Get(ctx context.Context, key Key) ([]domain.Slot, error) {
	payload, err := c.client.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrCacheUnavailable, key, err)
	}

	var slots []domain.Slot
	if err := json.Unmarshal(payload, &slots); err != nil {
		// Повреждённая запись равносильна промаху
		return nil, ErrCacheMiss
	}

	return slots, nil
}

// Put сохраняет слоты с TTL, равным freshness window, и регистрирует ключ
// в SET группы для последующей инвалидации
func (c *RedisCache) Put(ctx context.Context, key Key, slots []domain.Slot, freshnessWindow time.Duration) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrCacheUnavailable, key, err)
	}

	group := key.GroupKey()

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key.String(), payload, freshnessWindow)
	pipe.SAdd(ctx, group, key.String())
	// Группа живёт дольше записей, чтобы инвалидация всегда находила их
	pipe.Expire(ctx, group, freshnessWindow+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrCacheUnavailable, key, err)
	}
	return nil
}

// Invalidate удаляет все записи группы (бизнес, дата)
func (c *RedisCache) Invalidate(ctx context.Context, businessID int64, date string) error {
	group := GroupKey(businessID, date)

	members, err := c.client.SMembers(ctx, group).Result()
	if err != nil {
		return fmt.Errorf("%w: invalidate %s: %v", ErrCacheUnavailable, group, err)
	}

	keys := append(members, group)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: invalidate %s: %v", ErrCacheUnavailable, group, err)
	}
	return nil
}
