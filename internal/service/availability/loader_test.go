package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type stubWorkshops struct {
	workshops map[int64]*domain.Workshop
	blocks    []*domain.BlockedDate
}

func (s *stubWorkshops) GetByID(_ context.Context, id int64) (*domain.Workshop, error) {
	if w, ok := s.workshops[id]; ok {
		return w, nil
	}
	return nil, workshopRepo.ErrWorkshopNotFound
}

func (s *stubWorkshops) GetMainByDealership(_ context.Context, dealershipID int64) (*domain.Workshop, error) {
	for _, w := range s.workshops {
		if w.DealershipID == dealershipID && w.IsMain {
			return w, nil
		}
	}
	return nil, workshopRepo.ErrWorkshopNotFound
}

func (s *stubWorkshops) GetBlockedDates(_ context.Context, _ int64, _ time.Time) ([]*domain.BlockedDate, error) {
	return s.blocks, nil
}

type stubConfig struct {
	hours map[time.Weekday]*domain.OperatingHours
	cfg   *domain.DealershipConfiguration
	err   error
}

func (s *stubConfig) GetOperatingHours(_ context.Context, _ int64, weekday time.Weekday) (*domain.OperatingHours, error) {
	if s.err != nil {
		return nil, s.err
	}
	if h, ok := s.hours[weekday]; ok {
		return h, nil
	}
	return nil, configRepo.ErrOperatingHoursNotFound
}

func (s *stubConfig) GetConfigWithHierarchy(_ context.Context, _, _ int64) (*domain.DealershipConfiguration, error) {
	if s.cfg == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return s.cfg, nil
}

type stubAdvisors struct {
	advisors   []*domain.ServiceAdvisor
	grid       []*domain.AdvisorSlotConfiguration
	listCalled bool
}

func (s *stubAdvisors) ListActiveByWorkshop(_ context.Context, _ int64) ([]*domain.ServiceAdvisor, error) {
	s.listCalled = true
	return s.advisors, nil
}

func (s *stubAdvisors) ListSlotConfigurations(_ context.Context, ids []int64) ([]*domain.AdvisorSlotConfiguration, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	result := make([]*domain.AdvisorSlotConfiguration, 0)
	for _, row := range s.grid {
		if wanted[row.AdvisorID] {
			result = append(result, row)
		}
	}
	return result, nil
}

type stubCatalog struct {
	services map[int64]*domain.Service
}

func (s *stubCatalog) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if svc, ok := s.services[id]; ok {
		return svc, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (s *stubCatalog) GetByIDs(_ context.Context, ids []int64) (map[int64]*domain.Service, error) {
	result := make(map[int64]*domain.Service)
	for _, id := range ids {
		if svc, ok := s.services[id]; ok {
			result[id] = svc
		}
	}
	return result, nil
}

type stubAppointments struct {
	appointments []*domain.Appointment
}

func (s *stubAppointments) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if filter.ExcludeID != nil && a.ID == *filter.ExcludeID {
			continue
		}
		if !filter.IncludeInactive && !a.IsActive() {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

type fixture struct {
	workshops    *stubWorkshops
	config       *stubConfig
	advisors     *stubAdvisors
	catalog      *stubCatalog
	appointments *stubAppointments
}

func newFixture() *fixture {
	oilChange := &domain.Service{ID: serviceOilChange, Name: "Oil change", AvailableOn: allDays()}
	oilChange.AvailableOn[time.Sunday] = false
	diagnostics := &domain.Service{ID: serviceDiagnostics, Name: "Diagnostics", AvailableOn: allDays()}

	hours := make(map[time.Weekday]*domain.OperatingHours)
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[d] = &domain.OperatingHours{
			WorkshopID:   1,
			Weekday:      d,
			IsWorkingDay: d != time.Saturday,
			OpeningTime:  "09:00",
			ClosingTime:  "13:00",
		}
	}

	grid := make([]*domain.AdvisorSlotConfiguration, 0)
	for p := 1; p <= 8; p++ {
		grid = append(grid, &domain.AdvisorSlotConfiguration{AdvisorID: 1, SlotPosition: p, ServiceID: serviceDiagnostics})
	}
	grid[2].ServiceID = serviceOilChange

	return &fixture{
		workshops: &stubWorkshops{workshops: map[int64]*domain.Workshop{
			1: {ID: 1, DealershipID: 1, Name: "Main", IsMain: true},
			2: {ID: 2, DealershipID: 2, Name: "Other dealership"},
		}},
		config: &stubConfig{
			hours: hours,
			cfg:   &domain.DealershipConfiguration{DealershipID: 1, ShiftDurationMinutes: 30, Timezone: "Europe/Moscow"},
		},
		advisors: &stubAdvisors{
			advisors: []*domain.ServiceAdvisor{newAdvisor(1, "09:00", "13:00", 8)},
			grid:     grid,
		},
		catalog: &stubCatalog{services: map[int64]*domain.Service{
			serviceOilChange:   oilChange,
			serviceDiagnostics: diagnostics,
		}},
		appointments: &stubAppointments{},
	}
}

func (f *fixture) loader() *Loader {
	return NewLoader(f.workshops, f.config, f.advisors, f.catalog, f.appointments, "UTC")
}

func (f *fixture) service() *Service {
	return NewService(f.loader(), NewEvaluator(false), nil, logger.NewNop())
}

func TestLoader_LoadsFullSnapshot(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{activeAppointment(100, 1, "09:00")}

	day, err := f.loader().Load(context.Background(), Query{
		Date:         monday,
		ServiceID:    serviceDiagnostics,
		DealershipID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), day.Workshop.ID)
	assert.Equal(t, "Europe/Moscow", day.Timezone)
	assert.Equal(t, time.Monday, day.Weekday)
	assert.Len(t, day.Assignments[1], 8)
	assert.Contains(t, day.Catalog, serviceOilChange, "services referenced by the grid are loaded")
	assert.Len(t, day.Appointments, 1)
}

func TestLoader_ClosedDaySkipsAdvisors(t *testing.T) {
	f := newFixture()
	saturday := monday.AddDate(0, 0, 5)

	day, err := f.loader().Load(context.Background(), Query{Date: saturday, ServiceID: serviceDiagnostics, DealershipID: 1})

	require.NoError(t, err)
	assert.False(t, f.advisors.listCalled)
	assert.Nil(t, day.Advisors)
}

func TestLoader_WorkshopResolution(t *testing.T) {
	f := newFixture()

	_, err := f.loader().Load(context.Background(), Query{
		Date: monday, ServiceID: serviceDiagnostics, DealershipID: 1, WorkshopID: ptr.Ptr(int64(2)),
	})
	assert.ErrorIs(t, err, ErrWorkshopNotInDealership)

	_, err = f.loader().Load(context.Background(), Query{
		Date: monday, ServiceID: serviceDiagnostics, DealershipID: 1, WorkshopID: ptr.Ptr(int64(99)),
	})
	assert.ErrorIs(t, err, ErrWorkshopNotFound)

	_, err = f.loader().Load(context.Background(), Query{Date: monday, ServiceID: 404, DealershipID: 1})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestLoader_StoreFailureIsNotEmptyResult(t *testing.T) {
	f := newFixture()
	f.config.err = errors.New("connection reset")

	result, err := f.service().Compute(context.Background(), Query{Date: monday, ServiceID: serviceDiagnostics, DealershipID: 1})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_ComputeWithExclusion(t *testing.T) {
	f := newFixture()
	// Позиция 4 (10:30) закреплена за диагностикой
	f.appointments.appointments = []*domain.Appointment{activeAppointment(100, 1, "10:30")}

	q := Query{Date: monday, ServiceID: serviceDiagnostics, DealershipID: 1}

	result, err := f.service().Compute(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, result.Slot("10:30").Available)
	assert.Equal(t, ReasonAlreadyBooked, verdictFor(t, result.Slot("10:30"), 1).Reason)

	q.ExcludeAppointmentID = ptr.Ptr(int64(100))
	result, err = f.service().Compute(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, result.Slot("10:30").Available)
	assert.True(t, verdictFor(t, result.Slot("10:30"), 1).Eligible)
	assert.Equal(t, "Diagnostics", result.ServiceName)
}

func TestService_InheritanceOnSunday(t *testing.T) {
	f := newFixture()
	q := Query{Date: sunday, ServiceID: serviceDiagnostics, DealershipID: 1}

	result, err := f.service().Compute(context.Background(), q)
	require.NoError(t, err)
	// Позиция 3 (10:00) закреплена за заменой масла, которая не работает по воскресеньям
	assert.True(t, result.Slot("10:00").Available)

	q.Date = tuesday
	result, err = f.service().Compute(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, result.Slot("10:00").Available)
}
