package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListWorkshopAppointmentsRequest запрос на получение записей мастерской
type ListWorkshopAppointmentsRequest struct {
	WorkshopID      int64      `json:"workshopId"`
	Date            *time.Time `json:"date,omitempty"`            // Конкретная дата (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу, важнее IncludeInactive
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершенные и отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListWorkshopAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		WorkshopID:      r.WorkshopID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	WorkshopID      int64   `json:"workshopId"`
	ServiceID       int64   `json:"serviceId"`
	AdvisorID       *int64  `json:"advisorId,omitempty"`
	AppointmentDate string  `json:"appointmentDate"` // "2025-10-15"
	AppointmentTime string  `json:"appointmentTime"` // "10:00"
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CompletionNotes *string `json:"completionNotes,omitempty"`
	CancelledAt     *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		WorkshopID:      a.WorkshopID,
		ServiceID:       a.ServiceID,
		AdvisorID:       a.AdvisorID,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: a.AppointmentTime.String(),
		Status:          string(a.Status),
		Notes:           a.Notes,
		CompletionNotes: a.CompletionNotes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelled := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}

	for _, a := range list {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
