package resolve_availability

import "errors"

var (
	// ErrInvalidQuery возвращается при отсутствующих или некорректных
	// полях запроса; не ретраится, сразу отдаётся вызывающему
	ErrInvalidQuery = errors.New("resolve_availability: invalid query")

	// ErrRemoteUnavailable фиксирует отказ primary path. Наружу не выходит:
	// резолвер поглощает её переходом на fallback и поднимает выше только
	// в составе ErrAvailability, когда fallback тоже отказал.
	ErrRemoteUnavailable = errors.New("resolve_availability: remote slot engine unavailable")

	// ErrDataMissing возвращается, когда fallback не нашёл расписание,
	// услугу или мастера - слоты вычислить не из чего
	ErrDataMissing = errors.New("resolve_availability: required data missing")

	// ErrAvailability терминальная ошибка резолюции: оба пути отказали.
	// Оборачивает причину для диагностики, не протаскивая транспортные детали.
	ErrAvailability = errors.New("resolve_availability: failed to resolve availability")
)
