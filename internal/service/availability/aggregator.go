package availability

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Сообщения при досрочном завершении расчета
const (
	MessageNoOperatingHours = "no operating hours configured for this day"
	MessageNotWorkingDay    = "workshop is closed on this day"
	MessageNoShiftConfig    = "shift duration is not configured for this workshop"
	MessageNoAdvisors       = "no service advisors are working on this day"
	MessageNoSlotConfig     = "service advisors have no slot configuration"
	MessageNoAvailableSlots = "no available slots on this day"
)

// Aggregate runs the evaluator over every slot and advisor in chronological order
// and assembles the day result. The snapshot is not modified.
func Aggregate(day *DaySnapshot, evaluator *Evaluator) *Result {
	result := &Result{
		Date:        day.Date,
		WorkshopID:  day.Workshop.ID,
		Timezone:    day.Timezone,
		ServiceID:   day.Service.ID,
		ServiceName: day.Service.Name,
		DailyLimit:  day.Service.DailyLimit,
		Slots:       []domain.SlotAvailability{},
	}

	closure, message := closureOf(day)
	if closure != ClosureNone {
		result.Closure = closure
		result.Message = message
		return result
	}

	advisors := eligibleAdvisors(day)
	if len(advisors) == 0 {
		result.Closure, result.Message = noAdvisorsClosure(day)
		return result
	}

	shiftDuration := day.Config.ShiftDurationMinutes
	cutoff := day.Hours.ReceptionCutoff()
	partialBlocks := partialBlocksOf(day.Blocks)

	// Счетчики загрузки мастеров живут только в рамках одного расчета
	used := make(map[int64]int, len(advisors))
	booked := make(map[int64]map[int]struct{}, len(advisors))
	for _, a := range advisors {
		booked[a.ID] = make(map[int]struct{})
	}
	for _, appt := range day.Appointments {
		if !appt.IsActive() || appt.AdvisorID == nil {
			continue
		}
		times, ok := booked[*appt.AdvisorID]
		if !ok {
			continue
		}
		times[appt.AppointmentTime.Minutes()] = struct{}{}
		used[*appt.AdvisorID]++
	}

	for _, slot := range GenerateSlots(day.Hours.OpeningTime, cutoff, shiftDuration) {
		availability := domain.SlotAvailability{
			Time:    slot,
			Details: make([]domain.AdvisorVerdict, 0, len(advisors)),
		}

		for _, advisor := range advisors {
			verdict := evaluator.Evaluate(&Candidate{
				SlotStart:          slot,
				ShiftDuration:      shiftDuration,
				ReceptionCutoff:    cutoff,
				Weekday:            day.Weekday,
				Advisor:            advisor,
				Grid:               day.Assignments[advisor.ID],
				BookedTimes:        booked[advisor.ID],
				Used:               used[advisor.ID],
				RequestedServiceID: day.Service.ID,
				Catalog:            day.Catalog,
				PartialBlocks:      partialBlocks,
			})

			if verdict.Eligible {
				used[advisor.ID]++
				availability.TotalCapacity++
				availability.Available = true
			}
			availability.Details = append(availability.Details, verdict)
		}

		result.Slots = append(result.Slots, availability)
	}

	if !result.Available() {
		result.Message = MessageNoAvailableSlots
	}

	return result
}

// closureOf checks conditions that close the whole day before any advisor is evaluated
func closureOf(day *DaySnapshot) (Closure, string) {
	if day.Hours == nil {
		return ClosureNoOperatingHours, MessageNoOperatingHours
	}
	if !day.Hours.IsWorkingDay {
		return ClosureNotWorkingDay, MessageNotWorkingDay
	}
	for _, b := range day.Blocks {
		if b.IsFullDay() {
			return ClosureBlocked, fmt.Sprintf("workshop is closed: %s", b.ReasonText())
		}
	}
	if day.Config == nil || day.Config.ShiftDurationMinutes <= 0 {
		return ClosureNoShiftConfig, MessageNoShiftConfig
	}
	return ClosureNone, ""
}

// eligibleAdvisors returns advisors working on the weekday that have at least one configured slot
func eligibleAdvisors(day *DaySnapshot) []*domain.ServiceAdvisor {
	result := make([]*domain.ServiceAdvisor, 0, len(day.Advisors))
	for _, a := range day.Advisors {
		if !a.WorksOnWeekday(day.Weekday) {
			continue
		}
		if len(day.Assignments[a.ID]) == 0 {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func noAdvisorsClosure(day *DaySnapshot) (Closure, string) {
	for _, a := range day.Advisors {
		if a.WorksOnWeekday(day.Weekday) {
			return ClosureNoSlotConfig, MessageNoSlotConfig
		}
	}
	return ClosureNoAdvisors, MessageNoAdvisors
}

func partialBlocksOf(blocks []*domain.BlockedDate) []*domain.BlockedDate {
	result := make([]*domain.BlockedDate, 0, len(blocks))
	for _, b := range blocks {
		if !b.IsFullDay() {
			result = append(result, b)
		}
	}
	return result
}
