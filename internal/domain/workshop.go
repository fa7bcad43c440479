package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Workshop service point of a dealership
type Workshop struct {
	ID           int64
	DealershipID int64
	Name         string
	IsMain       bool
}

// Client owner of appointments, bound to one dealership
type Client struct {
	ID           int64
	DealershipID int64
	Name         string
}

// OperatingHours working schedule of a workshop for one weekday
type OperatingHours struct {
	WorkshopID              int64
	Weekday                 time.Weekday
	IsWorkingDay            bool
	OpeningTime             types.TimeString
	ClosingTime             types.TimeString  // в пределах суток, полночь задается как "23:59"
	ReceptionEndTime        *types.TimeString // nil = closing time
	MaxSimultaneousServices int
}

// ReceptionCutoff returns the latest time by which a slot must end.
// "00:00" is the start of the day, not midnight at closing, so such a cutoff yields no slots
func (h *OperatingHours) ReceptionCutoff() types.TimeString {
	if h.ReceptionEndTime != nil && !h.ReceptionEndTime.IsZero() {
		return *h.ReceptionEndTime
	}
	return h.ClosingTime
}

// DealershipConfiguration slot granularity settings
// Supports hierarchical configuration:
// 1. Workshop-specific (dealership_id, workshop_id)
// 2. Dealership-wide (dealership_id, NULL)
type DealershipConfiguration struct {
	ID                   int64
	DealershipID         int64
	WorkshopID           *int64 // NULL = config for all workshops
	ShiftDurationMinutes int
	Timezone             string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsWorkshopSpecific returns true if the configuration targets a single workshop
func (c *DealershipConfiguration) IsWorkshopSpecific() bool {
	return c.WorkshopID != nil
}

// BlockedDate closes a workshop for a whole day or part of it
type BlockedDate struct {
	ID         int64
	WorkshopID int64
	Date       time.Time
	FullDay    bool
	StartTime  *types.TimeString
	EndTime    *types.TimeString
	Reason     *string
}

// IsFullDay returns true if the block covers the whole day.
// A partial block without bounds is treated as a full-day block.
func (b *BlockedDate) IsFullDay() bool {
	return b.FullDay || b.StartTime == nil || b.EndTime == nil
}

// Overlaps returns true if [start, end) in minutes from midnight intersects the blocked window
func (b *BlockedDate) Overlaps(start, end int) bool {
	if b.IsFullDay() {
		return true
	}
	return start < b.EndTime.Minutes() && end > b.StartTime.Minutes()
}

// ReasonText returns the block reason or a generic placeholder
func (b *BlockedDate) ReasonText() string {
	if b.Reason == nil || *b.Reason == "" {
		return "unavailable"
	}
	return *b.Reason
}
