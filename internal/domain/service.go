package domain

// Service represents a bookable service of a business.
// Duration is immutable once the service is referenced by an appointment.
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
}

// HasValidDuration reports whether the duration is within allowed bounds
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes >= MinServiceDurationMinutes &&
		s.DurationMinutes <= MaxServiceDurationMinutes
}
