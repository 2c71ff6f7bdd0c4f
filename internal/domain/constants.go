package domain

// Default configuration values
const (
	DefaultFreshnessWindowMinutes = 5
	DefaultSlotEngineTimeoutSec   = 3
	DefaultMaxAdvanceDays         = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MinSlotStepMinutes        = 5
	MaxSlotStepMinutes        = 240
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы записей, которые не занимают время мастера.
// Используются для фильтрации при вычислении доступных слотов.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledByBusiness,
	StatusNoShow,
}

// ActiveStatuses статусы записей, занимающих время мастера
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
}
