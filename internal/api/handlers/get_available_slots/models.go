package get_available_slots

import (
	"time"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	resolveAvailability "github.com/glowdesk/GD-AvailabilityService/internal/usecase/resolve_availability"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string          `json:"date"`
	BusinessID     int64           `json:"businessId"`
	ServiceID      int64           `json:"serviceId"`
	ProfessionalID *int64          `json:"professionalId,omitempty"`
	Slots          []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ProfessionalID  *int64 `json:"professionalId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveAvailability.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
			ProfessionalID:  slot.ProfessionalID,
		}
	}

	return &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		BusinessID:     resp.BusinessID,
		ServiceID:      resp.ServiceID,
		ProfessionalID: resp.ProfessionalID,
		Slots:          slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(businessID, serviceID int64, professionalID *int64, dateStr string) (*resolveAvailability.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &resolveAvailability.Request{
		BusinessID:     businessID,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		Date:           date,
	}, nil
}
