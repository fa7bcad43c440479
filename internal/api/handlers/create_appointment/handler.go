package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени записи, ожидается HH:MM"
	msgInvalidInput         = "некорректные данные записи"
	msgDateInPast           = "нельзя записаться на прошедшее время"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgSlotTaken            = "слот уже занят, выберите другое время"
	msgDailyLimitReached    = "достигнут дневной лимит записей на услугу"
	msgClientNotFound       = "клиент не найден"
	msgWorkshopNotFound     = "мастерская не найдена"
	msgServiceNotFound      = "услуга не найдена"
	msgWorkshopNotInDealers = "мастерская не принадлежит дилерскому центру клиента"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrDateInPast):
			h.logger.Warn("POST /appointments - Slot in past: client_id=%d, date=%s, time=%s",
				req.ClientID, req.AppointmentDate, req.AppointmentTime)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrClientNotFound):
			h.logger.Warn("POST /appointments - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrWorkshopNotFound):
			h.logger.Warn("POST /appointments - Workshop not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrInvalidWorkshopForDealership):
			h.logger.Warn("POST /appointments - Workshop not in client dealership: client_id=%d", req.ClientID)
			handlers.RespondUnprocessable(w, msgWorkshopNotInDealers)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%d, date=%s, time=%s",
				req.ClientID, req.AppointmentDate, req.AppointmentTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken concurrently: client_id=%d, date=%s, time=%s",
				req.ClientID, req.AppointmentDate, req.AppointmentTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrDailyServiceLimitReached):
			h.logger.Warn("POST /appointments - Daily limit reached: service_id=%d, date=%s",
				req.ServiceID, req.AppointmentDate)
			handlers.RespondConflict(w, msgDailyLimitReached)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, client_id=%d, workshop_id=%d",
		result.ID, result.ClientID, result.WorkshopID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
