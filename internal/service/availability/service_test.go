package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	businessID int64
	date       string
	calls      int
	err        error
}

func (f *fakeCache) Invalidate(_ context.Context, businessID int64, date string) error {
	f.calls++
	f.businessID = businessID
	f.date = date
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestInvalidate(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(cache, nopLogger{})

	err := svc.Invalidate(context.Background(), 10, "2025-06-02")
	require.NoError(t, err)

	assert.Equal(t, 1, cache.calls)
	assert.Equal(t, int64(10), cache.businessID)
	assert.Equal(t, "2025-06-02", cache.date)
}

func TestInvalidate_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		businessID int64
		date       string
	}{
		{name: "zero business", businessID: 0, date: "2025-06-02"},
		{name: "negative business", businessID: -1, date: "2025-06-02"},
		{name: "empty date", businessID: 10, date: ""},
		{name: "bad date format", businessID: 10, date: "02.06.2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &fakeCache{}
			svc := NewService(cache, nopLogger{})

			err := svc.Invalidate(context.Background(), tt.businessID, tt.date)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, cache.calls)
		})
	}
}

func TestInvalidate_CacheError(t *testing.T) {
	cache := &fakeCache{err: errors.New("redis down")}
	svc := NewService(cache, nopLogger{})

	err := svc.Invalidate(context.Background(), 10, "2025-06-02")
	assert.ErrorIs(t, err, ErrInternal)
}
