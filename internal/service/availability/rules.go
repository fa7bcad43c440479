package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Причины отказа мастера в слоте
const (
	ReasonOutsideReception = "outside reception window"
	ReasonOutsideShift     = "outside working hours"
	ReasonLunchBreak       = "lunch break"
	ReasonNotConfigured    = "slot not configured"
	ReasonAlreadyBooked    = "already booked"
	ReasonDailyLimit       = "daily limit reached"
	ReasonNotConsecutive   = "slots must be taken consecutively"
)

// Candidate one (slot, advisor) pair with everything the rules need
type Candidate struct {
	SlotStart       types.TimeString
	ShiftDuration   int
	ReceptionCutoff types.TimeString
	Weekday         time.Weekday

	Advisor     *domain.ServiceAdvisor
	Grid        domain.SlotAssignments
	BookedTimes map[int]struct{} // minutes of the advisor's active appointments
	Used        int              // running capacity counter

	RequestedServiceID int64
	Catalog            map[int64]*domain.Service
	PartialBlocks      []*domain.BlockedDate
}

func (c *Candidate) slotEnd() int {
	return c.SlotStart.Minutes() + c.ShiftDuration
}

// Rule single eligibility check. Returns a rejection reason and false on failure
type Rule interface {
	Check(c *Candidate) (string, bool)
}

// RuleFunc adapts a function to Rule
type RuleFunc func(c *Candidate) (string, bool)

// Check calls f(c)
func (f RuleFunc) Check(c *Candidate) (string, bool) {
	return f(c)
}

func receptionRule(c *Candidate) (string, bool) {
	if c.slotEnd() > c.ReceptionCutoff.Minutes() {
		return ReasonOutsideReception, false
	}
	return "", true
}

func shiftRule(c *Candidate) (string, bool) {
	if !c.Advisor.InShift(c.SlotStart) {
		return ReasonOutsideShift, false
	}
	return "", true
}

func lunchRule(c *Candidate) (string, bool) {
	if c.Advisor.AtLunch(c.SlotStart) {
		return ReasonLunchBreak, false
	}
	return "", true
}

func blockRule(c *Candidate) (string, bool) {
	for _, b := range c.PartialBlocks {
		if b.Overlaps(c.SlotStart.Minutes(), c.slotEnd()) {
			return "blocked: " + b.ReasonText(), false
		}
	}
	return "", true
}

func assignmentRule(c *Candidate) (string, bool) {
	position := c.Advisor.SlotPosition(c.SlotStart, c.ShiftDuration)
	outcome, owner := ResolveAssignment(c.Grid, position, c.RequestedServiceID, c.Weekday, c.Catalog)

	switch outcome {
	case AssignmentMissing:
		return ReasonNotConfigured, false
	case AssignmentReserved:
		return fmt.Sprintf("slot reserved for %s", owner.Name), false
	}
	return "", true
}

func doubleBookingRule(c *Candidate) (string, bool) {
	if _, ok := c.BookedTimes[c.SlotStart.Minutes()]; ok {
		return ReasonAlreadyBooked, false
	}
	return "", true
}

func capacityRule(c *Candidate) (string, bool) {
	if c.Used >= c.Advisor.MaxSlots.For(c.Weekday) {
		return ReasonDailyLimit, false
	}
	return "", true
}

// consecutiveRule требует заполнять смену мастера подряд с первого слота:
// позиция слота должна совпадать со следующей после уже занятых
func consecutiveRule(c *Candidate) (string, bool) {
	if c.Advisor.SlotPosition(c.SlotStart, c.ShiftDuration) != c.Used+1 {
		return ReasonNotConsecutive, false
	}
	return "", true
}
