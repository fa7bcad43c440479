package get_workshop_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config"
)

const (
	msgInvalidDealershipID  = "некорректный ID дилерского центра"
	msgInvalidWorkshopID    = "некорректный ID мастерской"
	msgWorkshopNotFound     = "мастерская не найдена"
	msgWorkshopNotInDealers = "мастерская не принадлежит дилерскому центру"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dealerships/{dealershipId}/workshops/{workshopId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := handlers.PathInt64(r, "dealershipId")
	if err != nil {
		h.logger.Warn("GET /dealerships/{id}/workshops/{id}/config - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		h.logger.Warn("GET /dealerships/{id}/workshops/{id}/config - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	cfg, err := h.service.Get(r.Context(), dealershipID, workshopID)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrWorkshopNotFound):
			h.logger.Warn("GET /dealerships/{id}/workshops/{id}/config - Workshop not found: workshop_id=%d", workshopID)
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		case errors.Is(err, config.ErrWorkshopNotInDealership):
			h.logger.Warn("GET /dealerships/{id}/workshops/{id}/config - Workshop not in dealership: dealership_id=%d, workshop_id=%d",
				dealershipID, workshopID)
			handlers.RespondUnprocessable(w, msgWorkshopNotInDealers)

		default:
			h.logger.Error("GET /dealerships/{id}/workshops/{id}/config - Failed to get config: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /dealerships/{id}/workshops/{id}/config - Config retrieved: workshop_id=%d, level=%s", workshopID, cfg.Level)
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
