package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ServiceAdvisor employee who receives clients in a workshop
type ServiceAdvisor struct {
	ID         int64
	WorkshopID int64
	Name       string
	IsActive   bool
	ShiftStart types.TimeString
	ShiftEnd   types.TimeString
	LunchStart *types.TimeString
	LunchEnd   *types.TimeString
	WorksOn    WeekdayFlags
	MaxSlots   WeekdayLimits // per-weekday capacity ceiling
}

// WorksOnWeekday returns true if the advisor is active and works on the given weekday
func (a *ServiceAdvisor) WorksOnWeekday(day time.Weekday) bool {
	return a.IsActive && a.WorksOn.On(day)
}

// InShift returns true if t is within [ShiftStart, ShiftEnd)
func (a *ServiceAdvisor) InShift(t types.TimeString) bool {
	return t.Within(a.ShiftStart, a.ShiftEnd)
}

// AtLunch returns true if t is within [LunchStart, LunchEnd)
func (a *ServiceAdvisor) AtLunch(t types.TimeString) bool {
	if a.LunchStart == nil || a.LunchEnd == nil {
		return false
	}
	return t.Within(*a.LunchStart, *a.LunchEnd)
}

// SlotPosition returns the 1-based position of a slot inside the advisor's own shift.
// Returns 0 when the slot starts before the shift or the duration is not positive.
func (a *ServiceAdvisor) SlotPosition(slotStart types.TimeString, shiftDurationMinutes int) int {
	if shiftDurationMinutes <= 0 {
		return 0
	}
	offset := slotStart.Minutes() - a.ShiftStart.Minutes()
	if offset < 0 {
		return 0
	}
	return offset/shiftDurationMinutes + 1
}

// AdvisorSlotConfiguration assigns one slot position of an advisor's shift to a service
type AdvisorSlotConfiguration struct {
	ID           int64
	AdvisorID    int64
	SlotPosition int
	ServiceID    int64
}

// SlotAssignments slot position -> assigned service
type SlotAssignments map[int]int64

// NewSlotAssignments groups configuration rows by advisor
func NewSlotAssignments(rows []*AdvisorSlotConfiguration) map[int64]SlotAssignments {
	result := make(map[int64]SlotAssignments)
	for _, row := range rows {
		grid, ok := result[row.AdvisorID]
		if !ok {
			grid = make(SlotAssignments)
			result[row.AdvisorID] = grid
		}
		grid[row.SlotPosition] = row.ServiceID
	}
	return result
}

// ServiceIDs returns distinct services referenced by the grid
func (s SlotAssignments) ServiceIDs() []int64 {
	seen := make(map[int64]struct{}, len(s))
	ids := make([]int64, 0, len(s))
	for _, id := range s {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
