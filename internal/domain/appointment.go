package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment represents a client visit to a workshop
type Appointment struct {
	ID              int64
	ClientID        int64
	WorkshopID      int64
	ServiceID       int64
	AdvisorID       *int64
	AppointmentDate time.Time
	AppointmentTime types.TimeString
	Status          AppointmentStatus
	Notes           *string
	CompletionNotes *string
	CancelledAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies advisor capacity
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusInProgress
}

// AppointmentsFilter фильтр для получения записей мастерской
type AppointmentsFilter struct {
	WorkshopID      int64              // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать завершенные и отмененные
	ExcludeID       *int64             // Исключить запись (при переносе)
}

// AppointmentPatch sparse update of an appointment
type AppointmentPatch struct {
	Status          *AppointmentStatus
	AppointmentDate *time.Time
	AppointmentTime *types.TimeString
	WorkshopID      *int64
	ServiceID       *int64
	Notes           *string
	CompletionNotes *string
}

// IsCancellation returns true if the patch transitions the appointment to cancelled
func (p *AppointmentPatch) IsCancellation() bool {
	return p.Status != nil && *p.Status == StatusCancelled
}

// ChangesSchedule returns true if date, time or workshop is being changed
func (p *AppointmentPatch) ChangesSchedule() bool {
	return p.AppointmentDate != nil || p.AppointmentTime != nil || p.WorkshopID != nil
}

// IsEmpty returns true if the patch carries no fields
func (p *AppointmentPatch) IsEmpty() bool {
	return p.Status == nil && !p.ChangesSchedule() && p.ServiceID == nil &&
		p.Notes == nil && p.CompletionNotes == nil
}
