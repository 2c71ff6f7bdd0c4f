package resolve_availability

import (
	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	"github.com/glowdesk/GD-AvailabilityService/pkg/types"
)

// generateCandidates генерирует кандидатов начала слота по рабочим
// интервалам дня. Внутри каждого интервала кандидаты идут с фиксированным
// шагом stepMinutes от времени открытия; кандидат попадает в сетку, только
// если слот целиком помещается до закрытия интервала. Слот никогда не
// пересекает границу двух интервалов, даже смежных: перерыв, смоделированный
// двумя интервалами, остаётся перерывом.
//
// Чистая функция: одинаковые расписание и длительность всегда дают
// одинаковую последовательность; фильтрация по "сейчас" происходит позже.
func generateCandidates(intervals []domain.TimeInterval, durationMinutes, stepMinutes int) []types.TimeString {
	if durationMinutes <= 0 {
		return []types.TimeString{}
	}
	if stepMinutes <= 0 {
		// По умолчанию шаг равен длительности услуги
		stepMinutes = durationMinutes
	}

	candidates := make([]types.TimeString, 0)

	for _, interval := range intervals {
		current := interval.Open

		for interval.Contains(current, durationMinutes) {
			// Интервалы упорядочены и не пересекаются, но защищаемся
			// от дубликатов на случай некорректных данных расписания
			if n := len(candidates); n == 0 || candidates[n-1].IsBefore(current) {
				candidates = append(candidates, current)
			}

			next, err := current.AddMinutes(stepMinutes)
			if err != nil {
				// Вышли за пределы суток - интервал исчерпан
				break
			}
			current = next
		}
	}

	return candidates
}
