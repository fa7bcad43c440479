package get_available_slots

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date              string             `json:"date"`
	WorkshopID        int64              `json:"workshopId"`
	ServiceID         int64              `json:"serviceId"`
	ServiceName       string             `json:"serviceName"`
	Available         bool               `json:"available"`
	Slots             []AvailableSlot    `json:"slots,omitempty"`
	Message           string             `json:"message,omitempty"`
	NextAvailableSlot *NextAvailableSlot `json:"nextAvailableSlot,omitempty"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time          string          `json:"time"`
	Available     bool            `json:"available"`
	TotalCapacity int             `json:"totalCapacity"`
	Details       []AdvisorDetail `json:"details"`
}

// AdvisorDetail решение по мастеру-приемщику
type AdvisorDetail struct {
	AdvisorID   int64  `json:"advisorId"`
	AdvisorName string `json:"advisorName"`
	Eligible    bool   `json:"eligible"`
	Reason      string `json:"reason,omitempty"`
}

// NextAvailableSlot ближайший свободный слот
type NextAvailableSlot struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Weekday string `json:"weekday"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		WorkshopID:  resp.WorkshopID,
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		Available:   resp.Available,
		Message:     resp.Message,
	}

	if resp.Slots != nil {
		out.Slots = make([]AvailableSlot, len(resp.Slots))
		for i, slot := range resp.Slots {
			details := make([]AdvisorDetail, len(slot.Details))
			for j, d := range slot.Details {
				details[j] = AdvisorDetail{
					AdvisorID:   d.AdvisorID,
					AdvisorName: d.AdvisorName,
					Eligible:    d.Eligible,
					Reason:      d.Reason,
				}
			}
			out.Slots[i] = AvailableSlot{
				Time:          slot.Time.String(),
				Available:     slot.Available,
				TotalCapacity: slot.TotalCapacity,
				Details:       details,
			}
		}
	}

	if resp.NextAvailableSlot != nil {
		out.NextAvailableSlot = &NextAvailableSlot{
			Date:    resp.NextAvailableSlot.Date.Format(domain.DateFormat),
			Time:    resp.NextAvailableSlot.Time.String(),
			Weekday: resp.NextAvailableSlot.Weekday,
		}
	}

	return out
}
