package update_workshop_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

const (
	msgInvalidDealershipID  = "некорректный ID дилерского центра"
	msgInvalidWorkshopID    = "некорректный ID мастерской"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidConfig        = "некорректные настройки: длительность смены от 5 до 480 минут, часовой пояс IANA"
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

// Handle PUT /api/v1/dealerships/{dealershipId}/workshops/{workshopId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := handlers.PathInt64(r, "dealershipId")
	if err != nil {
		h.logger.Warn("PUT /dealerships/{id}/workshops/{id}/config - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	workshopID, err := handlers.PathInt64(r, "workshopId")
	if err != nil {
		h.logger.Warn("PUT /dealerships/{id}/workshops/{id}/config - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /dealerships/{id}/workshops/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := h.service.Update(r.Context(), dealershipID, workshopID, &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /dealerships/{id}/workshops/{id}/config - Invalid config: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, config.ErrWorkshopNotFound):
			h.logger.Warn("PUT /dealerships/{id}/workshops/{id}/config - Workshop not found: workshop_id=%d", workshopID)
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		case errors.Is(err, config.ErrWorkshopNotInDealership):
			h.logger.Warn("PUT /dealerships/{id}/workshops/{id}/config - Workshop not in dealership: dealership_id=%d, workshop_id=%d",
				dealershipID, workshopID)
			handlers.RespondUnprocessable(w, msgWorkshopNotInDealers)

		default:
			h.logger.Error("PUT /dealerships/{id}/workshops/{id}/config - Failed to update config: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /dealerships/{id}/workshops/{id}/config - Config updated: workshop_id=%d, shift=%d, tz=%s",
		workshopID, cfg.ShiftDurationMinutes, cfg.Timezone)
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
