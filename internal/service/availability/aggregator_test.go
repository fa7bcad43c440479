package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	serviceOilChange   int64 = 10
	serviceDiagnostics int64 = 20
)

var (
	sunday  = time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)
	monday  = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
)

func allDays() domain.WeekdayFlags {
	return domain.WeekdayFlags{true, true, true, true, true, true, true}
}

func newAdvisor(id int64, shiftStart, shiftEnd types.TimeString, maxSlots int) *domain.ServiceAdvisor {
	a := &domain.ServiceAdvisor{
		ID:         id,
		WorkshopID: 1,
		Name:       "Advisor",
		IsActive:   true,
		ShiftStart: shiftStart,
		ShiftEnd:   shiftEnd,
		WorksOn:    allDays(),
	}
	for i := range a.MaxSlots {
		a.MaxSlots[i] = maxSlots
	}
	return a
}

// fullGrid назначает все позиции смены одной услуге
func fullGrid(positions int, serviceID int64) domain.SlotAssignments {
	grid := make(domain.SlotAssignments, positions)
	for p := 1; p <= positions; p++ {
		grid[p] = serviceID
	}
	return grid
}

func newSnapshot(date time.Time) *DaySnapshot {
	diagnostics := &domain.Service{ID: serviceDiagnostics, Name: "Diagnostics", AvailableOn: allDays()}
	return &DaySnapshot{
		Date:     date,
		Weekday:  date.Weekday(),
		Workshop: &domain.Workshop{ID: 1, DealershipID: 1, Name: "Main", IsMain: true},
		Service:  diagnostics,
		Timezone: "UTC",
		Hours: &domain.OperatingHours{
			WorkshopID:   1,
			Weekday:      date.Weekday(),
			IsWorkingDay: true,
			OpeningTime:  "09:00",
			ClosingTime:  "13:00",
		},
		Config:      &domain.DealershipConfiguration{DealershipID: 1, ShiftDurationMinutes: 30},
		Assignments: map[int64]domain.SlotAssignments{},
		Catalog:     map[int64]*domain.Service{serviceDiagnostics: diagnostics},
	}
}

func activeAppointment(id, advisorID int64, at types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		WorkshopID:      1,
		ServiceID:       serviceDiagnostics,
		AdvisorID:       ptr.Ptr(advisorID),
		AppointmentDate: monday,
		AppointmentTime: at,
		Status:          domain.StatusPending,
	}
}

func verdictFor(t *testing.T, slot *domain.SlotAvailability, advisorID int64) domain.AdvisorVerdict {
	t.Helper()
	for _, d := range slot.Details {
		if d.AdvisorID == advisorID {
			return d
		}
	}
	t.Fatalf("no verdict for advisor %d at %s", advisorID, slot.Time)
	return domain.AdvisorVerdict{}
}

func eligibleCount(result *Result, advisorID int64) int {
	count := 0
	for _, slot := range result.Slots {
		for _, d := range slot.Details {
			if d.AdvisorID == advisorID && d.Eligible {
				count++
			}
		}
	}
	return count
}

func TestAggregate_CapacityWithExistingAppointmentAndLunch(t *testing.T) {
	day := newSnapshot(monday)
	advisor := newAdvisor(1, "09:00", "13:00", 0)
	advisor.MaxSlots[time.Monday] = 2
	advisor.LunchStart = ptr.Ptr(types.TimeString("12:00"))
	advisor.LunchEnd = ptr.Ptr(types.TimeString("12:30"))
	day.Advisors = []*domain.ServiceAdvisor{advisor}
	day.Assignments[1] = fullGrid(8, serviceDiagnostics)
	day.Appointments = []*domain.Appointment{activeAppointment(100, 1, "11:00")}

	result := Aggregate(day, NewEvaluator(false))

	require.Equal(t, ClosureNone, result.Closure)
	require.Len(t, result.Slots, 8)
	assert.Equal(t, 1, eligibleCount(result, 1))

	first := result.Slot("09:00")
	require.NotNil(t, first)
	assert.True(t, first.Available)
	assert.Equal(t, 1, first.TotalCapacity)

	assert.Equal(t, ReasonDailyLimit, verdictFor(t, result.Slot("09:30"), 1).Reason)
	assert.Equal(t, ReasonAlreadyBooked, verdictFor(t, result.Slot("11:00"), 1).Reason)
	assert.Equal(t, ReasonLunchBreak, verdictFor(t, result.Slot("12:00"), 1).Reason)
	assert.False(t, result.Slot("12:00").Available)
}

func TestAggregate_CanceledAppointmentsDoNotBlock(t *testing.T) {
	day := newSnapshot(monday)
	day.Advisors = []*domain.ServiceAdvisor{newAdvisor(1, "09:00", "13:00", 8)}
	day.Assignments[1] = fullGrid(8, serviceDiagnostics)

	cancelled := activeAppointment(100, 1, "09:00")
	cancelled.Status = domain.StatusCancelled
	completed := activeAppointment(101, 1, "09:30")
	completed.Status = domain.StatusCompleted
	day.Appointments = []*domain.Appointment{cancelled, completed}

	result := Aggregate(day, NewEvaluator(false))

	assert.True(t, result.Slot("09:00").Available)
	assert.True(t, result.Slot("09:30").Available)
	assert.Equal(t, 8, eligibleCount(result, 1))
}

func TestAggregate_Inheritance(t *testing.T) {
	oilChange := &domain.Service{ID: serviceOilChange, Name: "Oil change", AvailableOn: allDays()}
	oilChange.AvailableOn[time.Sunday] = false

	build := func(date time.Time) *DaySnapshot {
		day := newSnapshot(date)
		day.Advisors = []*domain.ServiceAdvisor{newAdvisor(7, "09:00", "13:00", 5)}
		day.Assignments[7] = domain.SlotAssignments{3: serviceOilChange}
		day.Catalog[serviceOilChange] = oilChange
		return day
	}

	t.Run("assigned service closed on weekday hands slot over", func(t *testing.T) {
		result := Aggregate(build(sunday), NewEvaluator(false))

		slot := result.Slot("10:00")
		require.NotNil(t, slot)
		assert.True(t, slot.Available)
		assert.True(t, verdictFor(t, slot, 7).Eligible)
		assert.Equal(t, ReasonNotConfigured, verdictFor(t, result.Slot("09:00"), 7).Reason)
	})

	t.Run("assigned service operating on weekday keeps slot", func(t *testing.T) {
		result := Aggregate(build(tuesday), NewEvaluator(false))

		slot := result.Slot("10:00")
		require.NotNil(t, slot)
		assert.False(t, slot.Available)
		assert.Equal(t, "slot reserved for Oil change", verdictFor(t, slot, 7).Reason)
	})

	t.Run("assigned service missing from catalog is inherited", func(t *testing.T) {
		day := build(tuesday)
		delete(day.Catalog, serviceOilChange)

		result := Aggregate(day, NewEvaluator(false))
		assert.True(t, result.Slot("10:00").Available)
	})
}

func TestAggregate_SlotPositionRelativeToAdvisorShift(t *testing.T) {
	day := newSnapshot(monday)
	early := newAdvisor(1, "09:00", "13:00", 8)
	late := newAdvisor(2, "10:00", "13:00", 8)
	day.Advisors = []*domain.ServiceAdvisor{late, early}
	// Позиция 1 у обоих мастеров, но это разное время
	day.Assignments[1] = domain.SlotAssignments{1: serviceDiagnostics}
	day.Assignments[2] = domain.SlotAssignments{1: serviceDiagnostics}

	result := Aggregate(day, NewEvaluator(false))

	nine := result.Slot("09:00")
	assert.True(t, verdictFor(t, nine, 1).Eligible)
	assert.Equal(t, ReasonOutsideShift, verdictFor(t, nine, 2).Reason)

	ten := result.Slot("10:00")
	assert.Equal(t, ReasonNotConfigured, verdictFor(t, ten, 1).Reason)
	assert.True(t, verdictFor(t, ten, 2).Eligible)

	// Мастера оцениваются по возрастанию ID
	assert.Equal(t, int64(1), nine.Details[0].AdvisorID)
	assert.Equal(t, []int64{2}, ten.EligibleAdvisorIDs())
}

func TestAggregate_CapacityNeverExceeded(t *testing.T) {
	day := newSnapshot(monday)
	day.Hours.ClosingTime = "18:00"
	for id := int64(1); id <= 3; id++ {
		a := newAdvisor(id, "09:00", "18:00", int(id))
		day.Advisors = append(day.Advisors, a)
		day.Assignments[id] = fullGrid(18, serviceDiagnostics)
	}
	day.Appointments = []*domain.Appointment{activeAppointment(100, 3, "15:00")}

	result := Aggregate(day, NewEvaluator(false))

	for _, a := range day.Advisors {
		existing := 0
		for _, appt := range day.Appointments {
			if appt.AdvisorID != nil && *appt.AdvisorID == a.ID {
				existing++
			}
		}
		assert.LessOrEqual(t, eligibleCount(result, a.ID)+existing, a.MaxSlots.For(time.Monday))
	}
	assert.Equal(t, 1, eligibleCount(result, 1))
	assert.Equal(t, 2, eligibleCount(result, 2))
	assert.Equal(t, 2, eligibleCount(result, 3))
}

func TestAggregate_PartialBlock(t *testing.T) {
	day := newSnapshot(monday)
	day.Advisors = []*domain.ServiceAdvisor{newAdvisor(1, "09:00", "13:00", 8)}
	day.Assignments[1] = fullGrid(8, serviceDiagnostics)
	day.Blocks = []*domain.BlockedDate{{
		WorkshopID: 1,
		Date:       monday,
		StartTime:  ptr.Ptr(types.TimeString("10:00")),
		EndTime:    ptr.Ptr(types.TimeString("11:00")),
		Reason:     ptr.Ptr("maintenance"),
	}}

	result := Aggregate(day, NewEvaluator(false))

	assert.True(t, result.Slot("09:30").Available)
	assert.Equal(t, "blocked: maintenance", verdictFor(t, result.Slot("10:00"), 1).Reason)
	assert.Equal(t, "blocked: maintenance", verdictFor(t, result.Slot("10:30"), 1).Reason)
	assert.True(t, result.Slot("11:00").Available)
}

func TestAggregate_Closures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(day *DaySnapshot)
		closure Closure
	}{
		{
			name:    "no operating hours",
			mutate:  func(day *DaySnapshot) { day.Hours = nil },
			closure: ClosureNoOperatingHours,
		},
		{
			name:    "not a working day",
			mutate:  func(day *DaySnapshot) { day.Hours.IsWorkingDay = false },
			closure: ClosureNotWorkingDay,
		},
		{
			name: "full day block",
			mutate: func(day *DaySnapshot) {
				day.Blocks = []*domain.BlockedDate{{FullDay: true, Reason: ptr.Ptr("holiday")}}
			},
			closure: ClosureBlocked,
		},
		{
			name:    "no shift configuration",
			mutate:  func(day *DaySnapshot) { day.Config = nil },
			closure: ClosureNoShiftConfig,
		},
		{
			name:    "no advisors working",
			mutate:  func(day *DaySnapshot) { day.Advisors[0].WorksOn[time.Monday] = false },
			closure: ClosureNoAdvisors,
		},
		{
			name:    "advisors without slot configuration",
			mutate:  func(day *DaySnapshot) { day.Assignments = map[int64]domain.SlotAssignments{} },
			closure: ClosureNoSlotConfig,
		},
	}

	messages := make(map[string]struct{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := newSnapshot(monday)
			day.Advisors = []*domain.ServiceAdvisor{newAdvisor(1, "09:00", "13:00", 8)}
			day.Assignments[1] = fullGrid(8, serviceDiagnostics)
			tt.mutate(day)

			result := Aggregate(day, NewEvaluator(false))

			assert.Equal(t, tt.closure, result.Closure)
			assert.Empty(t, result.Slots)
			assert.NotEmpty(t, result.Message)
			assert.Equal(t, "Diagnostics", result.ServiceName)
			messages[result.Message] = struct{}{}
		})
	}

	assert.Len(t, messages, len(tests), "every closure has its own message")
}

func TestAggregate_Idempotent(t *testing.T) {
	day := newSnapshot(monday)
	day.Advisors = []*domain.ServiceAdvisor{newAdvisor(1, "09:00", "13:00", 3), newAdvisor(2, "09:30", "12:00", 2)}
	day.Assignments[1] = fullGrid(8, serviceDiagnostics)
	day.Assignments[2] = fullGrid(5, serviceDiagnostics)
	day.Appointments = []*domain.Appointment{activeAppointment(100, 2, "10:00")}

	evaluator := NewEvaluator(false)
	assert.Equal(t, Aggregate(day, evaluator), Aggregate(day, evaluator))
}

func TestAggregate_ExcludedAppointmentFreesItsSlot(t *testing.T) {
	day := newSnapshot(monday)
	day.Advisors = []*domain.ServiceAdvisor{newAdvisor(1, "09:00", "13:00", 1)}
	day.Assignments[1] = fullGrid(8, serviceDiagnostics)

	withSelf := *day
	withSelf.Appointments = []*domain.Appointment{activeAppointment(100, 1, "09:00")}
	booked := Aggregate(&withSelf, NewEvaluator(false))
	assert.False(t, booked.Available())
	assert.Equal(t, ReasonAlreadyBooked, verdictFor(t, booked.Slot("09:00"), 1).Reason)

	// Снимок без переносимой записи: её собственный слот снова свободен
	result := Aggregate(day, NewEvaluator(false))
	require.NotNil(t, result.Slot("09:00"))
	assert.True(t, result.Slot("09:00").Available)
	assert.True(t, verdictFor(t, result.Slot("09:00"), 1).Eligible)
}

func TestAggregate_NoAvailableSlotsMessage(t *testing.T) {
	day := newSnapshot(monday)
	day.Advisors = []*domain.ServiceAdvisor{newAdvisor(1, "09:00", "13:00", 0)}
	day.Assignments[1] = fullGrid(8, serviceDiagnostics)

	result := Aggregate(day, NewEvaluator(false))

	assert.Equal(t, ClosureNone, result.Closure)
	assert.Len(t, result.Slots, 8)
	assert.False(t, result.Available())
	assert.Equal(t, MessageNoAvailableSlots, result.Message)
}

func TestAggregate_ReceptionCutoffBeforeOpening(t *testing.T) {
	day := newSnapshot(monday)
	day.Hours.ReceptionEndTime = ptr.Ptr(types.TimeString("08:00"))
	day.Advisors = []*domain.ServiceAdvisor{newAdvisor(1, "09:00", "13:00", 8)}
	day.Assignments[1] = fullGrid(8, serviceDiagnostics)

	var result *Result
	require.NotPanics(t, func() { result = Aggregate(day, NewEvaluator(false)) })

	assert.Empty(t, result.Slots)
	assert.False(t, result.Available())
	assert.Equal(t, MessageNoAvailableSlots, result.Message)
}
