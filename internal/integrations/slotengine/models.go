package slotengine

import "github.com/glowdesk/GD-AvailabilityService/pkg/types"

// computeSlotsResponse модель ответа движка расчёта слотов
type computeSlotsResponse struct {
	Date           string        `json:"date"`
	BusinessID     int64         `json:"businessId"`
	ServiceID      int64         `json:"serviceId"`
	ProfessionalID *int64        `json:"professionalId,omitempty"`
	Slots          []engineSlot  `json:"slots"`
}

// engineSlot слот в ответе движка
type engineSlot struct {
	StartTime       types.TimeString `json:"startTime"`
	DurationMinutes int              `json:"durationMinutes"`
}

// ErrorResponse модель ошибки движка
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
