package availability

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	"github.com/glowdesk/GD-AvailabilityService/pkg/ptr"
)

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_GetPut(t *testing.T) {
	cache, _ := newRedisCache(t)
	ctx := context.Background()
	key := testKey(nil)

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	slots := []domain.Slot{slotAt(t, "09:00", 30), slotAt(t, "09:30", 30)}
	require.NoError(t, cache.Put(ctx, key, slots, 5*time.Minute))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, slots, got)
}

func TestRedisCache_Expiry(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()
	key := testKey(nil)

	require.NoError(t, cache.Put(ctx, key, []domain.Slot{slotAt(t, "13:00", 30)}, 5*time.Minute))

	mr.FastForward(6 * time.Minute)

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Invalidate(t *testing.T) {
	cache, _ := newRedisCache(t)
	ctx := context.Background()

	sameDay := testKey(nil)
	sameDayPro := testKey(ptr.Ptr(int64(3)))
	otherDay := Key{BusinessID: 10, ServiceID: 20, Date: "2025-06-03"}

	for _, key := range []Key{sameDay, sameDayPro, otherDay} {
		require.NoError(t, cache.Put(ctx, key, []domain.Slot{slotAt(t, "09:00", 30)}, 5*time.Minute))
	}

	require.NoError(t, cache.Invalidate(ctx, 10, "2025-06-02"))

	_, err := cache.Get(ctx, sameDay)
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = cache.Get(ctx, sameDayPro)
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = cache.Get(ctx, otherDay)
	assert.NoError(t, err)
}

func TestRedisCache_CorruptedEntryIsMiss(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()
	key := testKey(nil)

	require.NoError(t, mr.Set(key.String(), "not json"))

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
