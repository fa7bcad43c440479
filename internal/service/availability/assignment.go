package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Assignment outcome of looking up a slot position in an advisor's grid
type Assignment int

const (
	// AssignmentMissing no service configured at the position
	AssignmentMissing Assignment = iota
	// AssignmentOwn position configured for the requested service
	AssignmentOwn
	// AssignmentInherited position belongs to a service that does not operate on the weekday
	AssignmentInherited
	// AssignmentReserved position belongs to another service operating on the weekday
	AssignmentReserved
)

// ResolveAssignment decides who owns a slot position for the requested service.
// An assigned service missing from the catalog is treated as not operating on the weekday.
func ResolveAssignment(
	grid domain.SlotAssignments,
	position int,
	requestedServiceID int64,
	weekday time.Weekday,
	catalog map[int64]*domain.Service,
) (Assignment, *domain.Service) {
	assignedID, ok := grid[position]
	if !ok {
		return AssignmentMissing, nil
	}
	if assignedID == requestedServiceID {
		return AssignmentOwn, catalog[assignedID]
	}

	owner, ok := catalog[assignedID]
	if !ok || !owner.AvailableOn.On(weekday) {
		return AssignmentInherited, owner
	}
	return AssignmentReserved, owner
}
