package create_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid appointment date")
	errInvalidTime = errors.New("invalid appointment time")
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID        int64   `json:"clientId"`
	WorkshopID      *int64  `json:"workshopId,omitempty"`
	ServiceID       int64   `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"` // "2025-10-15"
	AppointmentTime string  `json:"appointmentTime"` // "10:00"
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	WorkshopID      int64   `json:"workshopId"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	AdvisorID       *int64  `json:"advisorId,omitempty"`
	AppointmentDate string  `json:"appointmentDate"`
	AppointmentTime string  `json:"appointmentTime"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	slot, err := types.NewTimeStringFromString(r.AppointmentTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createAppointment.Request{
		ClientID:   r.ClientID,
		WorkshopID: r.WorkshopID,
		ServiceID:  r.ServiceID,
		Date:       date,
		Time:       slot,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		WorkshopID:      resp.WorkshopID,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		AdvisorID:       resp.AdvisorID,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: resp.AppointmentTime.String(),
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
