package resolve_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	availabilityCache "github.com/glowdesk/GD-AvailabilityService/internal/infra/cache/availability"
	"github.com/glowdesk/GD-AvailabilityService/pkg/types"
)

// UseCase use case резолюции доступных слотов: кеш, затем удалённый движок,
// затем локальный пересчёт из сырых записей
type UseCase struct {
	cache        Cache
	sources      []slotSource
	timeProvider TimeProvider
	metrics      MetricsRecorder
	cfg          Config
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	engineClient SlotEngineClient,
	cache Cache,
	metrics MetricsRecorder,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		cache: cache,
		sources: []slotSource{
			&remoteSource{engine: engineClient},
			&localSource{
				schedules:    scheduleRepo,
				catalog:      catalogRepo,
				appointments: appointmentRepo,
				policy:       cfg.UnassignedPolicy,
			},
		},
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute выполняет резолюцию доступности по запросу
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveAvailability: business=%d, service=%d, professional=%v, date=%s",
		req.BusinessID, req.ServiceID, req.ProfessionalID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и валидируем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.cfg.MaxAdvanceDays); err != nil {
		uc.logger.Warn("ResolveAvailability: date validation failed: %v", err)
		return nil, err
	}

	query := req.Query()
	key := availabilityCache.NewKey(query)

	// 3. Проверяем кеш. Прошедшие слоты отсекаются и для кеш-попаданий:
	// запись могла быть положена несколько минут назад.
	cached, err := uc.cache.Get(ctx, key)
	if err == nil {
		uc.metrics.IncCacheHit()
		uc.logger.Info("ResolveAvailability: cache hit for %s (%d slots)", key, len(cached))
		return uc.buildResponse(req, uc.dropElapsed(cached, req, now)), nil
	}
	if !errors.Is(err, availabilityCache.ErrCacheMiss) {
		// Недоступный кеш не роняет резолюцию
		uc.logger.Warn("ResolveAvailability: cache get failed for %s: %v", key, err)
	}
	uc.metrics.IncCacheMiss()

	// 4. Пробуем источники по очереди: удалённый движок, затем локальный
	// пересчёт. Fallback запускается только после окончательного отказа
	// primary path - гонок и дублирования нагрузки на движок нет.
	var slots []domain.Slot
	var sourceErrs []error

	for _, source := range uc.sources {
		slots, err = source.compute(ctx, query)
		if err == nil {
			uc.metrics.IncSourceSuccess(source.name())
			uc.logger.Info("ResolveAvailability: source=%s computed %d slots for %s",
				source.name(), len(slots), key)
			break
		}

		uc.metrics.IncSourceFailure(source.name())
		sourceErrs = append(sourceErrs, fmt.Errorf("%s: %w", source.name(), err))

		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			// Вызывающий отменил запрос - источники дальше не пробуем
			break
		}

		uc.logger.Warn("ResolveAvailability: source=%s failed for %s: %v", source.name(), key, err)
	}

	// 5. Оба пути отказали - наружу уходит терминальная ошибка.
	// Частичный или устаревший список под видом успеха не возвращается.
	if err != nil {
		joined := errors.Join(sourceErrs...)
		uc.logger.Error("ResolveAvailability: all sources failed for %s: %v", key, joined)

		if errors.Is(joined, ErrDataMissing) {
			return nil, fmt.Errorf("%w: %w", ErrAvailability, ErrDataMissing)
		}
		return nil, fmt.Errorf("%w: %v", ErrAvailability, joined)
	}

	// 6. Отсекаем прошедшие слоты для запросов на сегодня
	slots = uc.dropElapsed(slots, req, now)

	// 7. Кешируем результат; ошибка кеша не влияет на ответ
	if err := uc.cache.Put(ctx, key, slots, uc.cfg.FreshnessWindow); err != nil {
		uc.logger.Warn("ResolveAvailability: cache put failed for %s: %v", key, err)
	}

	return uc.buildResponse(req, slots), nil
}

// dropElapsed убирает слоты, начало которых уже прошло, если запрошен
// сегодняшний день
func (uc *UseCase) dropElapsed(slots []domain.Slot, req *Request, now time.Time) []domain.Slot {
	if !isSameDay(req.Date, now) {
		return slots
	}
	return filterElapsed(slots, types.NewTimeString(now))
}

func (uc *UseCase) buildResponse(req *Request, slots []domain.Slot) *Response {
	return &Response{
		Date:           req.Date,
		BusinessID:     req.BusinessID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Slots:          slots,
	}
}
