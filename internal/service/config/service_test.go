package config

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type stubConfigs struct {
	cfg   *domain.DealershipConfiguration
	saved []*domain.DealershipConfiguration
	hours []*domain.OperatingHours
}

func (s *stubConfigs) GetConfigWithHierarchy(_ context.Context, _, _ int64) (*domain.DealershipConfiguration, error) {
	if s.cfg == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return s.cfg, nil
}

func (s *stubConfigs) Upsert(_ context.Context, cfg *domain.DealershipConfiguration) (*domain.DealershipConfiguration, error) {
	cfg.ID = 77
	cfg.UpdatedAt = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	s.saved = append(s.saved, cfg)
	return cfg, nil
}

func (s *stubConfigs) ListOperatingHours(_ context.Context, _ int64) ([]*domain.OperatingHours, error) {
	return s.hours, nil
}

type stubWorkshops struct{}

func (stubWorkshops) GetByID(_ context.Context, id int64) (*domain.Workshop, error) {
	switch id {
	case 1:
		return &domain.Workshop{ID: 1, DealershipID: 3}, nil
	case 2:
		return &domain.Workshop{ID: 2, DealershipID: 4}, nil
	}
	return nil, workshopRepo.ErrWorkshopNotFound
}

func weekHours() []*domain.OperatingHours {
	reception := types.TimeString("17:30")
	return []*domain.OperatingHours{
		{WorkshopID: 1, Weekday: time.Sunday},
		{WorkshopID: 1, Weekday: time.Monday, IsWorkingDay: true, OpeningTime: "09:00", ClosingTime: "18:00",
			ReceptionEndTime: &reception, MaxSimultaneousServices: 4},
	}
}

func TestGet_DefaultsWithoutConfig(t *testing.T) {
	repo := &stubConfigs{hours: weekHours()}
	svc := NewService(repo, stubWorkshops{}, "Europe/Moscow", logger.NewNop())

	resp, err := svc.Get(context.Background(), 3, 1)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultShiftDurationMinutes, resp.ShiftDurationMinutes)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	assert.Equal(t, models.LevelDefault, resp.Level)
	require.Len(t, resp.OperatingHours, 2)
	assert.Equal(t, "monday", resp.OperatingHours[1].Weekday)
	assert.Equal(t, "17:30", *resp.OperatingHours[1].ReceptionEndTime)
	assert.Nil(t, resp.OperatingHours[0].ReceptionEndTime)
}

func TestGet_DealershipLevel(t *testing.T) {
	repo := &stubConfigs{cfg: &domain.DealershipConfiguration{ID: 5, DealershipID: 3, ShiftDurationMinutes: 45, Timezone: "Asia/Almaty"}}
	svc := NewService(repo, stubWorkshops{}, "", logger.NewNop())

	resp, err := svc.Get(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 45, resp.ShiftDurationMinutes)
	assert.Equal(t, models.LevelDealership, resp.Level)
}

func TestGet_WorkshopChecks(t *testing.T) {
	svc := NewService(&stubConfigs{}, stubWorkshops{}, "", logger.NewNop())

	_, err := svc.Get(context.Background(), 3, 9)
	assert.ErrorIs(t, err, ErrWorkshopNotFound)

	_, err = svc.Get(context.Background(), 3, 2)
	assert.ErrorIs(t, err, ErrWorkshopNotInDealership)
}

func TestUpdate_MergesWithEffectiveConfig(t *testing.T) {
	repo := &stubConfigs{cfg: &domain.DealershipConfiguration{ID: 5, DealershipID: 3, ShiftDurationMinutes: 45, Timezone: "Asia/Almaty"}}
	svc := NewService(repo, stubWorkshops{}, "UTC", logger.NewNop())

	resp, err := svc.Update(context.Background(), 3, 1, &models.UpdateConfigRequest{ShiftDurationMinutes: ptr.Ptr(20)})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	require.NotNil(t, saved.WorkshopID)
	assert.Equal(t, int64(1), *saved.WorkshopID)
	assert.Equal(t, 20, saved.ShiftDurationMinutes)
	assert.Equal(t, "Asia/Almaty", saved.Timezone)
	assert.Equal(t, models.LevelWorkshop, resp.Level)
	assert.NotNil(t, resp.UpdatedAt)
}

func TestUpdate_Validation(t *testing.T) {
	repo := &stubConfigs{}
	svc := NewService(repo, stubWorkshops{}, "UTC", logger.NewNop())

	tests := []struct {
		name string
		req  *models.UpdateConfigRequest
	}{
		{"empty", &models.UpdateConfigRequest{}},
		{"too short", &models.UpdateConfigRequest{ShiftDurationMinutes: ptr.Ptr(domain.MinShiftDurationMinutes - 1)}},
		{"too long", &models.UpdateConfigRequest{ShiftDurationMinutes: ptr.Ptr(domain.MaxShiftDurationMinutes + 1)}},
		{"unknown timezone", &models.UpdateConfigRequest{Timezone: ptr.Ptr("Mars/Olympus")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), 3, 1, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, repo.saved)
}
