package domain

import (
	"time"

	"github.com/glowdesk/GD-AvailabilityService/pkg/types"
)

// TimeInterval is a half-open [Open, Close) working interval within one day.
// A schedule models breaks as separate intervals, e.g. 09:00-12:00 and
// 13:00-18:00 for a lunch break; slots never span two intervals.
type TimeInterval struct {
	Open  types.TimeString
	Close types.TimeString
}

// Contains reports whether [start, start+durationMinutes) fully fits
// inside the interval.
func (i TimeInterval) Contains(start types.TimeString, durationMinutes int) bool {
	if start.IsBefore(i.Open) {
		return false
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return !end.IsAfter(i.Close)
}

// WeekSchedule maps weekdays to ordered, non-overlapping working intervals.
// A day with no intervals is a closed day.
type WeekSchedule struct {
	Monday    []TimeInterval
	Tuesday   []TimeInterval
	Wednesday []TimeInterval
	Thursday  []TimeInterval
	Friday    []TimeInterval
	Saturday  []TimeInterval
	Sunday    []TimeInterval
}

// IntervalsFor returns the working intervals for the weekday of date
func (w *WeekSchedule) IntervalsFor(date time.Time) []TimeInterval {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return nil
	}
}

// SetIntervals replaces the intervals for one weekday
func (w *WeekSchedule) SetIntervals(weekday time.Weekday, intervals []TimeInterval) {
	switch weekday {
	case time.Monday:
		w.Monday = intervals
	case time.Tuesday:
		w.Tuesday = intervals
	case time.Wednesday:
		w.Wednesday = intervals
	case time.Thursday:
		w.Thursday = intervals
	case time.Friday:
		w.Friday = intervals
	case time.Saturday:
		w.Saturday = intervals
	case time.Sunday:
		w.Sunday = intervals
	}
}

// BusinessSchedule holds the operating hours of a business and its slot
// grid step. SlotStepMinutes = 0 means "use the service duration as step".
type BusinessSchedule struct {
	BusinessID      int64
	Week            WeekSchedule
	SlotStepMinutes int
}

// ProfessionalSchedule is an optional per-professional overlay narrowing
// the business schedule. A professional without an overlay inherits the
// business schedule as-is.
type ProfessionalSchedule struct {
	ProfessionalID int64
	BusinessID     int64
	Week           WeekSchedule
}

// IntersectIntervals returns the ordered intersection of two ordered,
// non-overlapping interval lists. Used to narrow business hours by a
// professional's own availability.
func IntersectIntervals(a, b []TimeInterval) []TimeInterval {
	result := make([]TimeInterval, 0, len(a))

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		open := a[i].Open
		if open.IsBefore(b[j].Open) {
			open = b[j].Open
		}
		close := a[i].Close
		if b[j].Close.IsBefore(close) {
			close = b[j].Close
		}

		if open.IsBefore(close) {
			result = append(result, TimeInterval{Open: open, Close: close})
		}

		// Продвигаем список, чей интервал закончился раньше
		if a[i].Close.IsBefore(b[j].Close) {
			i++
		} else {
			j++
		}
	}

	return result
}
