package resolve_availability

import (
	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	"github.com/glowdesk/GD-AvailabilityService/pkg/types"
)

// hasOverlap проверяет пересечение слота [start, start+duration) с записью.
// Интервалы полуоткрытые: запись, заканчивающаяся ровно в начале слота
// (или начинающаяся ровно в его конце), НЕ пересекается с ним.
//
// Примеры:
// - Слот 11:30-12:00, запись 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, запись 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, запись 12:00-12:30 → НЕТ пересечения (граничат)
func hasOverlap(start types.TimeString, durationMinutes int, appt *domain.Appointment) bool {
	slotEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// Слот не помещается в сутки - пересечений нет
		return false
	}

	apptEnd, err := appt.StartTime.AddMinutes(appt.DurationMinutes)
	if err != nil {
		return false
	}

	return appt.StartTime.IsBefore(slotEnd) && apptEnd.IsAfter(start)
}

// filterConflicting отбирает кандидатов, не пересекающихся ни с одной
// активной записью. Используется для запросов с указанным мастером:
// appointments уже содержит записи мастера и записи уровня бизнеса.
func filterConflicting(candidates []types.TimeString, durationMinutes int, appointments []*domain.Appointment) []types.TimeString {
	free := make([]types.TimeString, 0, len(candidates))

	for _, candidate := range candidates {
		if !conflictsWithAny(candidate, durationMinutes, appointments) {
			free = append(free, candidate)
		}
	}

	return free
}

func conflictsWithAny(candidate types.TimeString, durationMinutes int, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if hasOverlap(candidate, durationMinutes, appt) {
			return true
		}
	}
	return false
}

// filterByPolicy отбирает кандидатов для запроса без указанного мастера.
//
// При политике any_professional кандидат доступен, если свободен хотя бы
// один мастер, выполняющий услугу; при all_professionals - только если
// свободны все. Если у бизнеса нет мастеров на услугу, кандидат проверяется
// против совокупного набора записей бизнеса.
//
// Записи уровня бизнеса (ProfessionalID = nil) блокируют всех мастеров
// при любой политике.
func filterByPolicy(
	candidates []types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
	professionals []int64,
	policy domain.UnassignedPolicy,
) []types.TimeString {
	if len(professionals) == 0 {
		// Мастера не смоделированы - бизнес работает как единый ресурс
		return filterConflicting(candidates, durationMinutes, appointments)
	}

	// Раскладываем записи по мастерам; записи уровня бизнеса попадают каждому
	perProfessional := make(map[int64][]*domain.Appointment, len(professionals))
	for _, pro := range professionals {
		for _, appt := range appointments {
			if appt.BlocksProfessional(pro) {
				perProfessional[pro] = append(perProfessional[pro], appt)
			}
		}
	}

	free := make([]types.TimeString, 0, len(candidates))

	for _, candidate := range candidates {
		freeCount := 0
		for _, pro := range professionals {
			if !conflictsWithAny(candidate, durationMinutes, perProfessional[pro]) {
				freeCount++
			}
		}

		switch policy {
		case domain.PolicyAllProfessionals:
			if freeCount == len(professionals) {
				free = append(free, candidate)
			}
		default: // domain.PolicyAnyProfessional
			if freeCount > 0 {
				free = append(free, candidate)
			}
		}
	}

	return free
}

// filterElapsed отбрасывает слоты, начавшиеся раньше cutoff. Применяется
// только к запросам на сегодня: слот, время которого уже прошло, никогда
// не предлагается.
func filterElapsed(slots []domain.Slot, cutoff types.TimeString) []domain.Slot {
	upcoming := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartTime.IsBefore(cutoff) {
			upcoming = append(upcoming, slot)
		}
	}
	return upcoming
}
