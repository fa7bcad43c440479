package update_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type stubUseCase struct {
	got *updateAppointment.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *updateAppointment.Request) (*updateAppointment.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	cancelledAt := time.Date(2025, 10, 2, 12, 0, 0, 0, time.UTC)
	return &updateAppointment.Response{
		ID:              req.AppointmentID,
		AppointmentDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		AppointmentTime: types.MustTimeString("10:00"),
		Status:          string(domain.StatusCancelled),
		CancelledAt:     &cancelledAt,
	}, nil
}

func doPatch(h *Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Cancel(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := doPatch(h, "42", `{"status":"cancelled"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.AppointmentID)
	assert.True(t, uc.got.Patch.IsCancellation())
	assert.False(t, uc.got.Patch.ChangesSchedule())
	assert.Contains(t, rec.Body.String(), `"cancelledAt":"2025-10-02T12:00:00Z"`)
}

func TestHandle_ReschedulePatch(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := doPatch(h, "7", `{"appointmentDate":"2025-10-16","appointmentTime":"11:30","workshopId":3}`)

	require.Equal(t, http.StatusOK, rec.Code)
	p := uc.got.Patch
	require.NotNil(t, p.AppointmentDate)
	assert.Equal(t, "2025-10-16", p.AppointmentDate.Format(domain.DateFormat))
	assert.Equal(t, types.TimeString("11:30"), *p.AppointmentTime)
	assert.Equal(t, int64(3), *p.WorkshopID)
	assert.Nil(t, p.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		body   string
		err    error
		status int
	}{
		{"bad id", "abc", `{}`, nil, http.StatusBadRequest},
		{"bad time", "1", `{"appointmentTime":"9am"}`, nil, http.StatusBadRequest},
		{"not found", "1", `{"notes":"x"}`, updateAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{"date in past", "1", `{"appointmentDate":"2020-01-01"}`, updateAppointment.ErrDateInPast, http.StatusBadRequest},
		{"slot not available", "1", `{"appointmentTime":"10:00"}`, updateAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{"inactive", "1", `{"appointmentTime":"10:00"}`, updateAppointment.ErrAppointmentNotActive, http.StatusConflict},
		{"foreign workshop", "1", `{"workshopId":9}`, updateAppointment.ErrInvalidWorkshopForDealership, http.StatusUnprocessableEntity},
		{"internal", "1", `{"notes":"x"}`, updateAppointment.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())
			assert.Equal(t, tt.status, doPatch(h, tt.id, tt.body).Code)
		})
	}
}
