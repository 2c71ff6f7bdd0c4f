package domain

import (
	"time"

	"github.com/glowdesk/GD-AvailabilityService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled           AppointmentStatus = "scheduled"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByClient   AppointmentStatus = "cancelled_by_client"
	StatusCancelledByBusiness AppointmentStatus = "cancelled_by_business"
	StatusNoShow              AppointmentStatus = "no_show"
)

// Appointment occupies [StartTime, StartTime+DurationMinutes) for exactly
// one professional on a given date. ProfessionalID = nil means the
// appointment blocks the business as a whole (professional-agnostic
// booking), so it conflicts with every professional's candidates.
// Appointment records are externally owned; this service only reads them.
type Appointment struct {
	ID              int64
	BusinessID      int64
	ServiceID       int64
	ProfessionalID  *int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its interval
func (a *Appointment) IsActive() bool {
	for _, status := range InactiveStatuses {
		if a.Status == status {
			return false
		}
	}
	return true
}

// BlocksProfessional reports whether the appointment occupies the given
// professional's time: its own professional or a business-level record.
func (a *Appointment) BlocksProfessional(professionalID int64) bool {
	return a.ProfessionalID == nil || *a.ProfessionalID == professionalID
}
