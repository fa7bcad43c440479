package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type stubUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func TestHandle_ParsesQuery(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:        date,
		WorkshopID:  5,
		ServiceID:   3,
		ServiceName: "Diagnostics",
		Available:   true,
		Slots: []getAvailableSlots.Slot{{
			Time:          types.MustTimeString("09:00"),
			Available:     true,
			TotalCapacity: 1,
			Details:       []getAvailableSlots.AdvisorDetail{{AdvisorID: 1, AdvisorName: "Ann", Eligible: true}},
		}},
	}}
	h := NewHandler(uc, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/availability?date=2025-10-15&service_id=3&dealership_id=1&workshop_id=5&exclude_appointment_id=9", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(5), *uc.got.WorkshopID)
	assert.Equal(t, int64(9), *uc.got.ExcludeAppointmentID)
	assert.False(t, uc.got.Probe)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "09:00", body.Slots[0].Time)
	assert.Equal(t, "2025-10-15", body.Date)
}

func TestHandle_ProbeOmitsSlots(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:    time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC),
		Message: getAvailableSlots.MessageProbe,
		NextAvailableSlot: &getAvailableSlots.NextSlot{
			Date:    time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
			Time:    types.MustTimeString("08:30"),
			Weekday: "Monday",
		},
	}}
	h := NewHandler(uc, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-10-18&service_id=3&dealership_id=1&probe=true", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.got.Probe)
	assert.NotContains(t, rec.Body.String(), `"slots"`)
	assert.Contains(t, rec.Body.String(), `"nextAvailableSlot":{"date":"2025-10-20","time":"08:30","weekday":"Monday"}`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"missing date", "service_id=3&dealership_id=1", nil, http.StatusBadRequest},
		{"bad service", "date=2025-10-15&service_id=x&dealership_id=1", nil, http.StatusBadRequest},
		{"negative workshop", "date=2025-10-15&service_id=3&dealership_id=1&workshop_id=-2", nil, http.StatusBadRequest},
		{"foreign workshop", "date=2025-10-15&service_id=3&dealership_id=1&workshop_id=2",
			getAvailableSlots.ErrInvalidWorkshopForDealership, http.StatusUnprocessableEntity},
		{"service not found", "date=2025-10-15&service_id=3&dealership_id=1",
			getAvailableSlots.ErrServiceNotFound, http.StatusNotFound},
		{"store failure", "date=2025-10-15&service_id=3&dealership_id=1",
			getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.Handle(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
