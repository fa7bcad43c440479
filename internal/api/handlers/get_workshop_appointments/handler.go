package get_workshop_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidWorkshopID = "некорректный ID мастерской"
	msgInvalidParams     = "некорректные параметры запроса"
	msgWorkshopNotFound  = "мастерская не найдена"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/workshops/{workshopId}/appointments
// Query params: date, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		h.logger.Warn("GET /workshops/{id}/appointments - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	req, err := ToServiceRequest(workshopID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /workshops/{id}/appointments - Invalid query params: workshop_id=%d, error=%v", workshopID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByWorkshop(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /workshops/{id}/appointments - Invalid filter: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, appointments.ErrWorkshopNotFound):
			h.logger.Warn("GET /workshops/{id}/appointments - Workshop not found: workshop_id=%d", workshopID)
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		default:
			h.logger.Error("GET /workshops/{id}/appointments - Failed to list appointments: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workshops/{id}/appointments - Appointments retrieved: workshop_id=%d, count=%d",
		workshopID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
