package slotengine

import "errors"

var (
	// ErrEngineUnavailable возвращается при сетевых ошибках, таймаутах и
	// серверных ошибках движка расчёта слотов. Резолвер реагирует на неё
	// переходом на локальный fallback-расчёт.
	ErrEngineUnavailable = errors.New("slotengine client: engine unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе движка
	// (битый JSON, неположительные длительности). Для резолвера
	// равносильна недоступности движка.
	ErrInvalidResponse = errors.New("slotengine client: invalid response")

	// ErrNotFound возвращается, когда движок не знает бизнес или услугу
	ErrNotFound = errors.New("slotengine client: business or service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("slotengine client: internal error")
)
