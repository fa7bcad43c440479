package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

// Service сервис настроек расписания мастерской
type Service struct {
	configRepo      ConfigRepository
	workshopRepo    WorkshopRepository
	defaultTimezone string
	logger          Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, workshopRepo WorkshopRepository, defaultTimezone string, logger Logger) *Service {
	if defaultTimezone == "" {
		defaultTimezone = domain.DefaultTimezone
	}
	return &Service{
		configRepo:      configRepo,
		workshopRepo:    workshopRepo,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Get возвращает действующую длительность смены, часовой пояс и недельный график мастерской.
// Без сохраненной конфигурации используются значения по умолчанию (level = "default")
func (s *Service) Get(ctx context.Context, dealershipID, workshopID int64) (*models.WorkshopConfigResponse, error) {
	s.logger.Info("Get: fetching config for dealership=%d, workshop=%d", dealershipID, workshopID)

	if err := s.checkWorkshop(ctx, "Get", dealershipID, workshopID); err != nil {
		return nil, err
	}

	cfg, err := s.configRepo.GetConfigWithHierarchy(ctx, dealershipID, workshopID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Get: repository error for workshop=%d: %v", workshopID, err)
		return nil, fmt.Errorf("%w: Get - config error: %v", ErrInternal, err)
	}

	hours, err := s.configRepo.ListOperatingHours(ctx, workshopID)
	if err != nil {
		s.logger.Error("Get: failed to list operating hours for workshop=%d: %v", workshopID, err)
		return nil, fmt.Errorf("%w: Get - operating hours error: %v", ErrInternal, err)
	}

	resp := models.FromDomain(dealershipID, workshopID, cfg, hours)
	if resp.Timezone == "" {
		resp.Timezone = s.defaultTimezone
	}

	s.logger.Info("Get: workshop=%d shift=%d tz=%s level=%s",
		workshopID, resp.ShiftDurationMinutes, resp.Timezone, resp.Level)
	return resp, nil
}

// Update сохраняет длительность смены и часовой пояс на уровне мастерской.
// Непереданные поля берутся из действующей конфигурации
func (s *Service) Update(ctx context.Context, dealershipID, workshopID int64, req *models.UpdateConfigRequest) (*models.WorkshopConfigResponse, error) {
	s.logger.Info("Update: updating config for dealership=%d, workshop=%d", dealershipID, workshopID)

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkWorkshop(ctx, "Update", dealershipID, workshopID); err != nil {
		return nil, err
	}

	current, err := s.configRepo.GetConfigWithHierarchy(ctx, dealershipID, workshopID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Update: repository error for workshop=%d: %v", workshopID, err)
		return nil, fmt.Errorf("%w: Update - config error: %v", ErrInternal, err)
	}

	cfg := &domain.DealershipConfiguration{
		DealershipID:         dealershipID,
		WorkshopID:           &workshopID,
		ShiftDurationMinutes: domain.DefaultShiftDurationMinutes,
		Timezone:             s.defaultTimezone,
	}
	if current != nil {
		cfg.ShiftDurationMinutes = current.ShiftDurationMinutes
		if current.Timezone != "" {
			cfg.Timezone = current.Timezone
		}
	}
	req.ApplyTo(cfg)

	saved, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("Update: failed to save config for workshop=%d: %v", workshopID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	hours, err := s.configRepo.ListOperatingHours(ctx, workshopID)
	if err != nil {
		s.logger.Error("Update: failed to list operating hours for workshop=%d: %v", workshopID, err)
		return nil, fmt.Errorf("%w: Update - operating hours error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: saved config id=%d for workshop=%d", saved.ID, workshopID)
	return models.FromDomain(dealershipID, workshopID, saved, hours), nil
}

func (s *Service) checkWorkshop(ctx context.Context, op string, dealershipID, workshopID int64) error {
	workshop, err := s.workshopRepo.GetByID(ctx, workshopID)
	if err != nil {
		if errors.Is(err, workshopRepo.ErrWorkshopNotFound) {
			s.logger.Warn("%s: workshop id=%d not found", op, workshopID)
			return ErrWorkshopNotFound
		}
		s.logger.Error("%s: failed to get workshop id=%d: %v", op, workshopID, err)
		return fmt.Errorf("%w: %s - workshop error: %v", ErrInternal, op, err)
	}

	if workshop.DealershipID != dealershipID {
		s.logger.Warn("%s: workshop id=%d belongs to dealership=%d, not %d",
			op, workshopID, workshop.DealershipID, dealershipID)
		return ErrWorkshopNotInDealership
	}

	return nil
}

// validateUpdate проверяет границы длительности смены и часовой пояс
func validateUpdate(req *models.UpdateConfigRequest) error {
	if req.ShiftDurationMinutes == nil && req.Timezone == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if d := req.ShiftDurationMinutes; d != nil {
		if *d < domain.MinShiftDurationMinutes || *d > domain.MaxShiftDurationMinutes {
			return fmt.Errorf("%w: shiftDurationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinShiftDurationMinutes, domain.MaxShiftDurationMinutes)
		}
	}

	if tz := req.Timezone; tz != nil {
		if *tz == "" {
			return fmt.Errorf("%w: timezone must not be empty", ErrInvalidInput)
		}
		if _, err := time.LoadLocation(*tz); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, *tz)
		}
	}

	return nil
}
