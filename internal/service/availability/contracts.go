package availability

import "context"

// Cache интерфейс кеша доступности
type Cache interface {
	Invalidate(ctx context.Context, businessID int64, date string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
