package resolve_availability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	catalogRepo "github.com/glowdesk/GD-AvailabilityService/internal/infra/storage/catalog"
	scheduleRepo "github.com/glowdesk/GD-AvailabilityService/internal/infra/storage/schedule"
	"github.com/glowdesk/GD-AvailabilityService/pkg/types"
)

// slotSource способ вычислить слоты по запросу. Primary (удалённый движок)
// и fallback (локальный расчёт) - две взаимозаменяемые реализации; резолвер
// пробует их по очереди. Для одинаковых данных обе обязаны выдавать
// одинаковую упорядоченную последовательность слотов.
type slotSource interface {
	name() string
	compute(ctx context.Context, query *domain.SlotQuery) ([]domain.Slot, error)
}

// remoteSource primary path: делегирует расчёт удалённому движку.
// Таймаут ограничен HTTP-клиентом движка.
type remoteSource struct {
	engine SlotEngineClient
}

func (s *remoteSource) name() string { return "remote" }

func (s *remoteSource) compute(ctx context.Context, query *domain.SlotQuery) ([]domain.Slot, error) {
	slots, err := s.engine.ComputeSlots(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return slots, nil
}

// localSource fallback path: пересчитывает слоты из сырых записей
// по той же схеме, по которой работает движок - сетка кандидатов
// по расписанию плюс фильтр конфликтов.
type localSource struct {
	schedules    ScheduleRepository
	catalog      CatalogRepository
	appointments AppointmentRepository
	policy       domain.UnassignedPolicy
}

func (s *localSource) name() string { return "local" }

func (s *localSource) compute(ctx context.Context, query *domain.SlotQuery) ([]domain.Slot, error) {
	// Чтения независимы и не имеют побочных эффектов - выполняем их
	// параллельно и соединяем перед фильтрацией конфликтов
	var (
		wg sync.WaitGroup

		service    *domain.Service
		serviceErr error

		schedule    *domain.BusinessSchedule
		scheduleErr error

		overlay    *domain.ProfessionalSchedule
		overlayErr error

		appointments    []*domain.Appointment
		appointmentsErr error

		professionals    []int64
		professionalsErr error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		service, serviceErr = s.catalog.GetService(ctx, query.ServiceID)
	}()

	go func() {
		defer wg.Done()
		schedule, scheduleErr = s.schedules.GetBusinessSchedule(ctx, query.BusinessID)
	}()

	go func() {
		defer wg.Done()
		appointments, appointmentsErr = s.appointments.ListForDate(ctx, query.BusinessID, query.ProfessionalID, query.Date)
	}()

	if query.ProfessionalID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			overlay, overlayErr = s.schedules.GetProfessionalSchedule(ctx, *query.ProfessionalID)
		}()
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()
			professionals, professionalsErr = s.appointments.ListProfessionals(ctx, query.BusinessID, query.ServiceID)
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Вызывающий отменил резолюцию - частичный результат не отдаём
		return nil, err
	}

	switch {
	case errors.Is(serviceErr, catalogRepo.ErrServiceNotFound):
		return nil, fmt.Errorf("%w: service id=%d", ErrDataMissing, query.ServiceID)
	case serviceErr != nil:
		return nil, fmt.Errorf("fetch service: %w", serviceErr)
	case errors.Is(scheduleErr, scheduleRepo.ErrScheduleNotFound):
		return nil, fmt.Errorf("%w: business schedule id=%d", ErrDataMissing, query.BusinessID)
	case scheduleErr != nil:
		return nil, fmt.Errorf("fetch business schedule: %w", scheduleErr)
	case appointmentsErr != nil:
		return nil, fmt.Errorf("fetch appointments: %w", appointmentsErr)
	case professionalsErr != nil:
		return nil, fmt.Errorf("fetch professionals: %w", professionalsErr)
	}

	if service.BusinessID != query.BusinessID {
		return nil, fmt.Errorf("%w: service id=%d does not belong to business id=%d",
			ErrDataMissing, query.ServiceID, query.BusinessID)
	}

	// Рабочие интервалы дня; индивидуальное расписание мастера сужает
	// расписание бизнеса, его отсутствие означает наследование
	intervals := schedule.Week.IntervalsFor(query.Date)

	if query.ProfessionalID != nil {
		switch {
		case errors.Is(overlayErr, scheduleRepo.ErrProfessionalNotFound):
			return nil, fmt.Errorf("%w: professional id=%d", ErrDataMissing, *query.ProfessionalID)
		case overlayErr != nil && !errors.Is(overlayErr, scheduleRepo.ErrScheduleNotFound):
			return nil, fmt.Errorf("fetch professional schedule: %w", overlayErr)
		case overlayErr == nil:
			intervals = domain.IntersectIntervals(intervals, overlay.Week.IntervalsFor(query.Date))
		}
	}

	candidates := generateCandidates(intervals, service.DurationMinutes, schedule.SlotStepMinutes)

	var free []types.TimeString
	if query.ProfessionalID != nil {
		free = filterConflicting(candidates, service.DurationMinutes, appointments)
	} else {
		free = filterByPolicy(candidates, service.DurationMinutes, appointments, professionals, s.policy)
	}

	slots := make([]domain.Slot, 0, len(free))
	for _, start := range free {
		end, err := start.AddMinutes(service.DurationMinutes)
		if err != nil {
			// Кандидат из сетки всегда помещается в сутки
			continue
		}
		slots = append(slots, domain.Slot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: service.DurationMinutes,
			ProfessionalID:  query.ProfessionalID,
		})
	}

	return slots, nil
}
