package resolve_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	"github.com/glowdesk/GD-AvailabilityService/pkg/ptr"
)

func appointmentAt(t *testing.T, start string, duration int, professionalID *int64) *domain.Appointment {
	t.Helper()
	return &domain.Appointment{
		StartTime:       mustTime(t, start),
		DurationMinutes: duration,
		ProfessionalID:  professionalID,
		Status:          domain.StatusScheduled,
	}
}

func TestFilterConflicting_HalfOpenBoundaries(t *testing.T) {
	// Расписание 09:00-12:00 и 13:00-18:00, услуга 30 минут,
	// одна запись 10:00-10:30 у запрошенного мастера
	candidates := generateCandidates([]domain.TimeInterval{
		interval(t, "09:00", "12:00"),
		interval(t, "13:00", "18:00"),
	}, 30, 0)
	require.Len(t, candidates, 16)

	pro := ptr.Ptr(int64(3))
	appointments := []*domain.Appointment{appointmentAt(t, "10:00", 30, pro)}

	free := filterConflicting(candidates, 30, appointments)

	got := timesOf(free)
	require.Len(t, free, 15)

	// Убран ровно кандидат 10:00
	assert.NotContains(t, got, "10:00")
	// 09:30 заканчивается в 10:00 - полуоткрытые интервалы не пересекаются
	assert.Contains(t, got, "09:30")
	// 10:30 начинается в конце записи - тоже свободен
	assert.Contains(t, got, "10:30")
	// 09:45 не в сетке вовсе: шаг выровнен по длительности
	assert.NotContains(t, got, "09:45")
}

func TestFilterConflicting_MidSlotOverlap(t *testing.T) {
	candidates := generateCandidates([]domain.TimeInterval{interval(t, "11:00", "13:00")}, 30, 0)

	// Запись 11:20-11:40 пересекает и слот 11:00, и слот 11:30
	appointments := []*domain.Appointment{appointmentAt(t, "11:20", 20, nil)}

	free := filterConflicting(candidates, 30, appointments)
	assert.Equal(t, []string{"12:00", "12:30"}, timesOf(free))
}

func TestFilterConflicting_InactiveAppointmentsIgnored(t *testing.T) {
	candidates := generateCandidates([]domain.TimeInterval{interval(t, "09:00", "10:00")}, 30, 0)

	cancelled := appointmentAt(t, "09:00", 30, nil)
	cancelled.Status = domain.StatusCancelledByClient
	noShow := appointmentAt(t, "09:30", 30, nil)
	noShow.Status = domain.StatusNoShow

	free := filterConflicting(candidates, 30, []*domain.Appointment{cancelled, noShow})
	assert.Equal(t, []string{"09:00", "09:30"}, timesOf(free))
}

func TestFilterByPolicy_AnyProfessional(t *testing.T) {
	candidates := generateCandidates([]domain.TimeInterval{interval(t, "09:00", "11:00")}, 30, 0)
	professionals := []int64{1, 2}

	// В 09:00 занят только мастер 1, в 09:30 заняты оба
	appointments := []*domain.Appointment{
		appointmentAt(t, "09:00", 30, ptr.Ptr(int64(1))),
		appointmentAt(t, "09:30", 30, ptr.Ptr(int64(1))),
		appointmentAt(t, "09:30", 30, ptr.Ptr(int64(2))),
	}

	free := filterByPolicy(candidates, 30, appointments, professionals, domain.PolicyAnyProfessional)

	// 09:00 остаётся - свободен мастер 2; 09:30 уходит - заняты оба
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, timesOf(free))
}

func TestFilterByPolicy_AllProfessionals(t *testing.T) {
	candidates := generateCandidates([]domain.TimeInterval{interval(t, "09:00", "11:00")}, 30, 0)
	professionals := []int64{1, 2}

	appointments := []*domain.Appointment{
		appointmentAt(t, "09:00", 30, ptr.Ptr(int64(1))),
	}

	free := filterByPolicy(candidates, 30, appointments, professionals, domain.PolicyAllProfessionals)

	// При политике all занятость одного мастера убирает кандидата
	assert.Equal(t, []string{"09:30", "10:00", "10:30"}, timesOf(free))
}

func TestFilterByPolicy_BusinessLevelAppointmentBlocksEveryone(t *testing.T) {
	candidates := generateCandidates([]domain.TimeInterval{interval(t, "09:00", "10:30")}, 30, 0)
	professionals := []int64{1, 2}

	// Запись уровня бизнеса (ProfessionalID = nil)
	appointments := []*domain.Appointment{appointmentAt(t, "09:30", 30, nil)}

	free := filterByPolicy(candidates, 30, appointments, professionals, domain.PolicyAnyProfessional)
	assert.Equal(t, []string{"09:00", "10:00"}, timesOf(free))
}

func TestFilterByPolicy_NoProfessionalsFallsBackToAggregate(t *testing.T) {
	candidates := generateCandidates([]domain.TimeInterval{interval(t, "09:00", "10:30")}, 30, 0)

	appointments := []*domain.Appointment{appointmentAt(t, "09:00", 30, nil)}

	free := filterByPolicy(candidates, 30, appointments, nil, domain.PolicyAnyProfessional)
	assert.Equal(t, []string{"09:30", "10:00"}, timesOf(free))
}

func TestFilterElapsed(t *testing.T) {
	slots := []domain.Slot{
		{StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "09:30"), DurationMinutes: 30},
		{StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "10:30"), DurationMinutes: 30},
		{StartTime: mustTime(t, "11:00"), EndTime: mustTime(t, "11:30"), DurationMinutes: 30},
	}

	upcoming := filterElapsed(slots, mustTime(t, "10:00"))

	// Слот, начинающийся ровно "сейчас", ещё предлагается
	require.Len(t, upcoming, 2)
	assert.Equal(t, "10:00", upcoming[0].StartTime.String())
	assert.Equal(t, "11:00", upcoming[1].StartTime.String())
}
