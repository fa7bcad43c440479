package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

const (
	msgInvalidDealershipID  = "некорректный ID дилерского центра"
	msgInvalidWorkshopID    = "некорректный ID мастерской"
	msgInvalidServiceID     = "некорректный ID услуги"
	msgInvalidExcludeID     = "некорректный ID исключаемой записи"
	msgInvalidProbe         = "некорректное значение probe"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput         = "некорректные параметры запроса"
	msgDateInPast           = "дата в прошлом"
	msgWorkshopNotFound     = "мастерская не найдена"
	msgServiceNotFound      = "услуга не найдена"
	msgWorkshopNotInDealers = "мастерская не принадлежит дилерскому центру"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date, service_id, dealership_id (required), workshop_id, exclude_appointment_id, probe
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dealershipID, err := handlers.ParseID(query.Get("dealership_id"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	serviceID, err := handlers.ParseID(query.Get("service_id"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	workshopID, err := handlers.QueryInt64(r, "workshop_id")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	excludeID, err := handlers.QueryInt64(r, "exclude_appointment_id")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid exclude appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExcludeID)
		return
	}

	probe := false
	if raw := query.Get("probe"); raw != "" {
		probe, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid probe flag: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProbe)
			return
		}
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:                 date,
		ServiceID:            serviceID,
		DealershipID:         dealershipID,
		WorkshopID:           workshopID,
		ExcludeAppointmentID: excludeID,
		Probe:                probe,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /availability - Date in past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrWorkshopNotFound):
			h.logger.Warn("GET /availability - Workshop not found: dealership_id=%d, workshop_id=%d",
				dealershipID, ptr.Value(workshopID))
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidWorkshopForDealership):
			h.logger.Warn("GET /availability - Workshop not in dealership: dealership_id=%d, workshop_id=%d",
				dealershipID, ptr.Value(workshopID))
			handlers.RespondUnprocessable(w, msgWorkshopNotInDealers)

		default:
			h.logger.Error("GET /availability - Failed to compute slots: dealership_id=%d, service_id=%d, date=%s, error=%v",
				dealershipID, serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Slots computed: workshop_id=%d, service_id=%d, date=%s, available=%t, slots_count=%d",
		result.WorkshopID, serviceID, dateStr, result.Available, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
