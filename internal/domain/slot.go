package domain

import (
	"time"

	"github.com/glowdesk/GD-AvailabilityService/pkg/types"
)

// Slot represents a proposed, unbooked time interval offered as bookable.
// Slots are ephemeral: they exist only as resolution output and become
// appointments only through the booking flow.
type Slot struct {
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	ProfessionalID  *int64           `json:"professionalId,omitempty"`
}

// Overlaps reports whether the slot overlaps the half-open interval
// [start, start+durationMinutes). Touching boundaries do not overlap.
func (s *Slot) Overlaps(start types.TimeString, durationMinutes int) bool {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return s.StartTime.IsBefore(end) && s.EndTime.IsAfter(start)
}

// SlotQuery identifies a single availability resolution request.
// BusinessID, ServiceID and Date are required; ProfessionalID is optional
// (nil means "any professional", subject to the configured policy).
type SlotQuery struct {
	BusinessID     int64
	ServiceID      int64
	Date           time.Time
	ProfessionalID *int64
}

// UnassignedPolicy controls how availability is decided when a query
// does not name a professional.
type UnassignedPolicy string

const (
	// PolicyAnyProfessional offers a slot when at least one professional
	// capable of the service is free (matches "assign automatically" UX).
	PolicyAnyProfessional UnassignedPolicy = "any_professional"

	// PolicyAllProfessionals offers a slot only when every professional
	// capable of the service is free.
	PolicyAllProfessionals UnassignedPolicy = "all_professionals"
)

// IsValid reports whether the policy value is one of the known policies
func (p UnassignedPolicy) IsValid() bool {
	return p == PolicyAnyProfessional || p == PolicyAllProfessionals
}
