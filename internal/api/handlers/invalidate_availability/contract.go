package invalidate_availability

import "context"

type AvailabilityService interface {
	Invalidate(ctx context.Context, businessID int64, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
