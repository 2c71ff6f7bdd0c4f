package invalidate_availability

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/glowdesk/GD-AvailabilityService/internal/api/handlers"
	"github.com/glowdesk/GD-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidBody  = "некорректное тело запроса"
	msgInvalidInput = "некорректные параметры инвалидации"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /internal/v1/availability/invalidate
// Body: {"businessId": 10, "date": "2025-06-02"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req InvalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /availability/invalidate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.Invalidate(r.Context(), req.BusinessID, req.Date); err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /availability/invalidate - Invalid input: business_id=%d, date=%s, error=%v",
				req.BusinessID, req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability/invalidate - Failed to invalidate: business_id=%d, date=%s, error=%v",
				req.BusinessID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/invalidate - Invalidated successfully: business_id=%d, date=%s",
		req.BusinessID, req.Date)
	w.WriteHeader(http.StatusNoContent)
}
