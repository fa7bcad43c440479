package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на изменение записи
type Request struct {
	AppointmentID int64
	Patch         domain.AppointmentPatch
}

// Response модель ответа с измененной записью
type Response struct {
	ID              int64
	ClientID        int64
	WorkshopID      int64
	ServiceID       int64
	AdvisorID       *int64
	AppointmentDate time.Time
	AppointmentTime types.TimeString
	Status          string
	Notes           *string
	CompletionNotes *string
	CancelledAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// target итоговые дата, время, мастерская и услуга после применения изменений
type target struct {
	date       time.Time
	time       types.TimeString
	workshopID int64
	serviceID  int64
}
