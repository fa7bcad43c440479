package update_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени записи, ожидается HH:MM"
	msgInvalidInput         = "некорректные данные для изменения записи"
	msgDateInPast           = "нельзя перенести запись на прошедшее время"
	msgAppointmentNotFound  = "запись не найдена"
	msgAppointmentNotActive = "завершенную или отмененную запись нельзя перенести"
	msgWorkshopNotFound     = "мастерская не найдена"
	msgServiceNotFound      = "услуга не найдена"
	msgWorkshopNotInDealers = "мастерская не принадлежит дилерскому центру клиента"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgSlotTaken            = "слот уже занят, выберите другое время"
	msgDailyLimitReached    = "достигнут дневной лимит записей на услугу"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: id=%d, error=%v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse request: id=%d, error=%v", appointmentID, err)
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
		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateAppointment.ErrDateInPast):
			h.logger.Warn("PATCH /appointments/{id} - Date in past: id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrWorkshopNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Workshop not found: id=%d", appointmentID)
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Service not found: id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrInvalidWorkshopForDealership):
			h.logger.Warn("PATCH /appointments/{id} - Workshop not in client dealership: id=%d", appointmentID)
			handlers.RespondUnprocessable(w, msgWorkshopNotInDealers)

		case errors.Is(err, updateAppointment.ErrAppointmentNotActive):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not active: id=%d", appointmentID)
			handlers.RespondConflict(w, msgAppointmentNotActive)

		case errors.Is(err, updateAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /appointments/{id} - Slot not available: id=%d", appointmentID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, updateAppointment.ErrSlotTaken):
			h.logger.Warn("PATCH /appointments/{id} - Slot taken concurrently: id=%d", appointmentID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, updateAppointment.ErrDailyServiceLimitReached):
			h.logger.Warn("PATCH /appointments/{id} - Daily limit reached: id=%d", appointmentID)
			handlers.RespondConflict(w, msgDailyLimitReached)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated: id=%d, status=%s", result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
