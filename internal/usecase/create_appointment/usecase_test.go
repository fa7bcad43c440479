package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/events"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubAvailability struct {
	result     *availability.Result
	computeErr error
	resolveErr error
	queries    []availability.Query
}

func (s *stubAvailability) Compute(_ context.Context, q availability.Query) (*availability.Result, error) {
	s.queries = append(s.queries, q)
	if s.computeErr != nil {
		return nil, s.computeErr
	}
	return s.result, nil
}

func (s *stubAvailability) ResolveWorkshop(_ context.Context, dealershipID int64, workshopID *int64) (*domain.Workshop, error) {
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	id := int64(1)
	if workshopID != nil {
		id = *workshopID
	}
	return &domain.Workshop{ID: id, DealershipID: dealershipID, Name: "Main"}, nil
}

type stubClients struct{ clients map[int64]*domain.Client }

func (s *stubClients) GetClient(_ context.Context, id int64) (*domain.Client, error) {
	if c, ok := s.clients[id]; ok {
		return c, nil
	}
	return nil, workshopRepo.ErrClientNotFound
}

type stubAppointments struct {
	count     int
	createErr error
	created   []*domain.Appointment
}

func (s *stubAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	a.ID = int64(100 + len(s.created))
	s.created = append(s.created, a)
	return a, nil
}

func (s *stubAppointments) CountByServiceAndDate(_ context.Context, _ int64, _ time.Time, _ *int64) (int, error) {
	return s.count, nil
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct{ types []string }

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ *domain.Appointment) error {
	p.types = append(p.types, eventType)
	return nil
}

type recordingMetrics struct{ conflicts []string }

func (m *recordingMetrics) ObserveConflict(kind string) { m.conflicts = append(m.conflicts, kind) }

type fixture struct {
	availability *stubAvailability
	appointments *stubAppointments
	publisher    *recordingPublisher
	metrics      *recordingMetrics
	uc           *UseCase
}

func openResult() *availability.Result {
	return &availability.Result{
		Date:        monday,
		WorkshopID:  1,
		Timezone:    "UTC",
		ServiceID:   20,
		ServiceName: "Diagnostics",
		Slots: []domain.SlotAvailability{
			{Time: "09:00", Available: false, Details: []domain.AdvisorVerdict{
				{AdvisorID: 1, Reason: availability.ReasonAlreadyBooked},
				{AdvisorID: 2, Reason: availability.ReasonLunchBreak},
			}},
			{Time: "09:30", Available: true, TotalCapacity: 2, Details: []domain.AdvisorVerdict{
				{AdvisorID: 1, Eligible: true},
				{AdvisorID: 2, Eligible: true},
			}},
		},
	}
}

func newFixture() *fixture {
	f := &fixture{
		availability: &stubAvailability{result: openResult()},
		appointments: &stubAppointments{},
		publisher:    &recordingPublisher{},
		metrics:      &recordingMetrics{},
	}
	clients := &stubClients{clients: map[int64]*domain.Client{
		7: {ID: 7, DealershipID: 3, Name: "Ivan"},
	}}
	f.uc = NewUseCase(f.availability, clients, f.appointments, inlineTx{}, f.publisher, f.metrics, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)}
	return f
}

func validRequest(at types.TimeString) *Request {
	return &Request{ClientID: 7, ServiceID: 20, Date: monday, Time: at}
}

func TestExecute_CreatesWithFirstEligibleAdvisor(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest("09:30"))
	require.NoError(t, err)

	require.NotNil(t, resp.AdvisorID)
	assert.Equal(t, int64(1), *resp.AdvisorID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Diagnostics", resp.ServiceName)
	assert.Equal(t, int64(1), resp.WorkshopID)
	assert.Equal(t, []string{events.TypeAppointmentCreated}, f.publisher.types)

	require.Len(t, f.availability.queries, 1)
	assert.Equal(t, int64(3), f.availability.queries[0].DealershipID)
	assert.Nil(t, f.availability.queries[0].ExcludeAppointmentID)
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), validRequest("09:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.appointments.created)
	assert.Empty(t, f.publisher.types)
	assert.Equal(t, []string{domain.ConflictSlotNotAvailable}, f.metrics.conflicts)

	_, err = f.uc.Execute(context.Background(), validRequest("10:15"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_DailyServiceLimit(t *testing.T) {
	f := newFixture()
	f.availability.result.DailyLimit = ptr.Ptr(3)
	f.appointments.count = 3

	_, err := f.uc.Execute(context.Background(), validRequest("09:30"))
	assert.ErrorIs(t, err, ErrDailyServiceLimitReached)
	assert.Empty(t, f.appointments.created)

	f.appointments.count = 2
	_, err = f.uc.Execute(context.Background(), validRequest("09:30"))
	assert.NoError(t, err)

	// Неположительный лимит означает отсутствие ограничения
	f.availability.result.DailyLimit = ptr.Ptr(0)
	f.appointments.count = 5
	_, err = f.uc.Execute(context.Background(), validRequest("09:30"))
	assert.NoError(t, err)
}

func TestExecute_WorkshopOfAnotherDealership(t *testing.T) {
	f := newFixture()
	f.availability.resolveErr = availability.ErrWorkshopNotInDealership

	req := validRequest("09:30")
	req.WorkshopID = ptr.Ptr(int64(9))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidWorkshopForDealership)
	assert.Empty(t, f.availability.queries)
}

func TestExecute_SlotTakenConcurrently(t *testing.T) {
	f := newFixture()
	f.appointments.createErr = appointmentRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), validRequest("09:30"))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Contains(t, f.metrics.conflicts, domain.ConflictSlotTaken)
	assert.Empty(t, f.publisher.types)
}

func TestExecute_StoreFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.availability.computeErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), validRequest("09:30"))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_PastSlot(t *testing.T) {
	f := newFixture()
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 10, 13, 9, 45, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), validRequest("09:30"))
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_ClientNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest("09:30")
	req.ClientID = 99

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		req  *Request
	}{
		{"no client", &Request{ServiceID: 20, Date: monday, Time: "09:30"}},
		{"no service", &Request{ClientID: 7, Date: monday, Time: "09:30"}},
		{"no date", &Request{ClientID: 7, ServiceID: 20, Time: "09:30"}},
		{"bad time", &Request{ClientID: 7, ServiceID: 20, Date: monday, Time: "25:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
