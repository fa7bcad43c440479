package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Closure причина, по которой расчет завершился без слотов
type Closure string

const (
	ClosureNone             Closure = ""
	ClosureNoOperatingHours Closure = "no_operating_hours"
	ClosureNotWorkingDay    Closure = "not_working_day"
	ClosureBlocked          Closure = "blocked"
	ClosureNoShiftConfig    Closure = "no_shift_config"
	ClosureNoAdvisors       Closure = "no_advisors"
	ClosureNoSlotConfig     Closure = "no_slot_config"
)

// Query параметры расчета доступности
type Query struct {
	Date                 time.Time
	ServiceID            int64
	DealershipID         int64
	WorkshopID           *int64 // nil = основная мастерская дилерского центра
	ExcludeAppointmentID *int64 // запись, которая переносится
}

// DaySnapshot все входные данные расчета на один день, прочитанные до начала вычислений
type DaySnapshot struct {
	Date     time.Time
	Weekday  time.Weekday
	Workshop *domain.Workshop
	Service  *domain.Service
	Timezone string

	Hours        *domain.OperatingHours          // nil = график не задан
	Config       *domain.DealershipConfiguration // nil = длительность смены не задана
	Blocks       []*domain.BlockedDate
	Advisors     []*domain.ServiceAdvisor // по возрастанию ID
	Assignments  map[int64]domain.SlotAssignments
	Appointments []*domain.Appointment // активные записи дня без исключенной
	Catalog      map[int64]*domain.Service
}

// Result результат расчета доступности на день
type Result struct {
	Date        time.Time
	WorkshopID  int64
	Timezone    string
	ServiceID   int64
	ServiceName string
	DailyLimit  *int // дневной лимит записей на услугу, nil = без ограничения
	Slots       []domain.SlotAvailability
	Closure     Closure
	Message     string
}

// Available returns true if at least one slot can be booked
func (r *Result) Available() bool {
	return r.FirstAvailable() != nil
}

// FirstAvailable returns the earliest bookable slot
func (r *Result) FirstAvailable() *domain.SlotAvailability {
	for i := range r.Slots {
		if r.Slots[i].Available {
			return &r.Slots[i]
		}
	}
	return nil
}

// Slot returns the slot starting at t
func (r *Result) Slot(t types.TimeString) *domain.SlotAvailability {
	for i := range r.Slots {
		if r.Slots[i].Time.Equal(t) {
			return &r.Slots[i]
		}
	}
	return nil
}
