package events

import "time"

// Типы событий жизненного цикла записи
const (
	TypeAppointmentCreated     = "appointment.created"
	TypeAppointmentRescheduled = "appointment.rescheduled"
	TypeAppointmentCancelled   = "appointment.cancelled"
)

// Event событие по записи для внешних потребителей (напоминания, опросы)
type Event struct {
	ID              string    `json:"eventId"`
	Type            string    `json:"eventType"`
	AppointmentID   int64     `json:"appointmentId"`
	ClientID        int64     `json:"clientId"`
	WorkshopID      int64     `json:"workshopId"`
	ServiceID       int64     `json:"serviceId"`
	AdvisorID       *int64    `json:"advisorId,omitempty"`
	AppointmentDate string    `json:"appointmentDate"` // "2025-10-15"
	AppointmentTime string    `json:"appointmentTime"` // "10:00"
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurredAt"`
}
