package update_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid appointment date")
	errInvalidTime = errors.New("invalid appointment time")
)

// UpdateAppointmentRequest HTTP request model, все поля необязательные
type UpdateAppointmentRequest struct {
	Status          *string `json:"status,omitempty"`
	AppointmentDate *string `json:"appointmentDate,omitempty"`
	AppointmentTime *string `json:"appointmentTime,omitempty"`
	WorkshopID      *int64  `json:"workshopId,omitempty"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CompletionNotes *string `json:"completionNotes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	WorkshopID      int64   `json:"workshopId"`
	ServiceID       int64   `json:"serviceId"`
	AdvisorID       *int64  `json:"advisorId,omitempty"`
	AppointmentDate string  `json:"appointmentDate"`
	AppointmentTime string  `json:"appointmentTime"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CompletionNotes *string `json:"completionNotes,omitempty"`
	CancelledAt     *string `json:"cancelledAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*updateAppointment.Request, error) {
	patch := domain.AppointmentPatch{
		WorkshopID:      r.WorkshopID,
		ServiceID:       r.ServiceID,
		Notes:           r.Notes,
		CompletionNotes: r.CompletionNotes,
	}

	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		patch.Status = &status
	}

	if r.AppointmentDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.AppointmentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
		}
		patch.AppointmentDate = &date
	}

	if r.AppointmentTime != nil {
		slot, err := types.NewTimeStringFromString(*r.AppointmentTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
		}
		patch.AppointmentTime = &slot
	}

	return &updateAppointment.Request{
		AppointmentID: appointmentID,
		Patch:         patch,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	out := &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		WorkshopID:      resp.WorkshopID,
		ServiceID:       resp.ServiceID,
		AdvisorID:       resp.AdvisorID,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: resp.AppointmentTime.String(),
		Status:          resp.Status,
		Notes:           resp.Notes,
		CompletionNotes: resp.CompletionNotes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.CancelledAt != nil {
		cancelledAt := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}
	return out
}
