package appointments

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	workshopRepo    WorkshopRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, workshopRepo WorkshopRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		workshopRepo:    workshopRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByWorkshop получает записи мастерской.
// По умолчанию возвращаются только активные записи, IncludeInactive добавляет завершенные и отмененные
func (s *Service) ListByWorkshop(ctx context.Context, req *models.ListWorkshopAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByWorkshop: fetching appointments for workshop=%d", req.WorkshopID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByWorkshop: invalid filter for workshop=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.workshopRepo.GetByID(ctx, req.WorkshopID); err != nil {
		if errors.Is(err, workshopRepo.ErrWorkshopNotFound) {
			s.logger.Warn("ListByWorkshop: workshop id=%d not found", req.WorkshopID)
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("ListByWorkshop: failed to get workshop id=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: ListByWorkshop - workshop error: %v", ErrInternal, err)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByWorkshop: repository error for workshop=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: ListByWorkshop - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByWorkshop: fetched %d appointments for workshop=%d", len(list), req.WorkshopID)
	return models.FromDomainAppointmentList(list), nil
}
