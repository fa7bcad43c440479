package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AdvisorVerdict result of evaluating one advisor for one slot
type AdvisorVerdict struct {
	AdvisorID   int64
	AdvisorName string
	Eligible    bool
	Reason      string // empty when eligible
}

// SlotAvailability availability of a single slot across all advisors
type SlotAvailability struct {
	Time          types.TimeString
	Available     bool
	TotalCapacity int // number of eligible advisors
	Details       []AdvisorVerdict
}

// EligibleAdvisorIDs returns advisors that can take the slot, in evaluation order
func (s *SlotAvailability) EligibleAdvisorIDs() []int64 {
	ids := make([]int64, 0, s.TotalCapacity)
	for _, d := range s.Details {
		if d.Eligible {
			ids = append(ids, d.AdvisorID)
		}
	}
	return ids
}

// IsSlotInPast проверяет, что слот date+slot уже начался в часовом поясе timezone.
// Неизвестный часовой пояс трактуется как UTC
func IsSlotInPast(date time.Time, slot types.TimeString, now time.Time, timezone string) bool {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)

	y1, m1, d1 := date.Date()
	y2, m2, d2 := local.Date()
	day := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)

	if day.Before(today) {
		return true
	}
	if day.After(today) {
		return false
	}
	return slot.Minutes() <= local.Hour()*60+local.Minute()
}
