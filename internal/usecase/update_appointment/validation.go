package update_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	p := req.Patch
	if p.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *p.Status)
	}

	if p.AppointmentDate != nil && p.AppointmentDate.IsZero() {
		return fmt.Errorf("%w: appointmentDate must not be empty", ErrInvalidInput)
	}

	if p.AppointmentTime != nil {
		if err := p.AppointmentTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid appointmentTime format: %v", ErrInvalidInput, err)
		}
	}

	if p.WorkshopID != nil && *p.WorkshopID <= 0 {
		return fmt.Errorf("%w: workshopID must be positive", ErrInvalidInput)
	}

	if p.ServiceID != nil && *p.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if p.Notes != nil && utf8.RuneCountInString(*p.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if p.CompletionNotes != nil && utf8.RuneCountInString(*p.CompletionNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: completionNotes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// resolveTarget берет новое значение, если оно передано, иначе текущее значение записи
func resolveTarget(a *domain.Appointment, p domain.AppointmentPatch) target {
	t := target{
		date:       a.AppointmentDate,
		time:       a.AppointmentTime,
		workshopID: a.WorkshopID,
		serviceID:  a.ServiceID,
	}
	if p.AppointmentDate != nil {
		t.date = *p.AppointmentDate
	}
	if p.AppointmentTime != nil {
		t.time = *p.AppointmentTime
	}
	if p.WorkshopID != nil {
		t.workshopID = *p.WorkshopID
	}
	if p.ServiceID != nil {
		t.serviceID = *p.ServiceID
	}
	return t
}

// pickAdvisor оставляет текущего мастера, если он может принять слот, иначе берет первого подходящего
func pickAdvisor(current *int64, eligible []int64) int64 {
	if current != nil {
		for _, id := range eligible {
			if id == *current {
				return id
			}
		}
	}
	return eligible[0]
}
