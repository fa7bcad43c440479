package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/events"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для создания записи на сервис
type UseCase struct {
	availability    AvailabilityService
	clientRepo      ClientRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityService,
	clientRepo ClientRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:    availability,
		clientRepo:      clientRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка слота и вставка идут в одной сериализуемой транзакции, занятый параллельно слот возвращается как ErrSlotTaken
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, workshop=%d, service=%d, date=%s, time=%s",
		req.ClientID, ptr.Value(req.WorkshopID), req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Клиент определяет дилерский центр
	client, err := uc.clientRepo.GetClient(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, workshopRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 3. Мастерская должна принадлежать дилерскому центру клиента
	workshop, err := uc.availability.ResolveWorkshop(ctx, client.DealershipID, req.WorkshopID)
	if err != nil {
		return nil, uc.mapAvailabilityError(err, client.DealershipID, req)
	}

	var created *domain.Appointment
	var serviceName string

	// 4. Проверка слота и создание записи в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Расчет доступности на дату записи
		result, err := uc.availability.Compute(txCtx, availability.Query{
			Date:         req.Date,
			ServiceID:    req.ServiceID,
			DealershipID: client.DealershipID,
			WorkshopID:   &workshop.ID,
		})
		if err != nil {
			return uc.mapAvailabilityError(err, client.DealershipID, req)
		}
		serviceName = result.ServiceName

		// 4.2. Время записи не должно быть в прошлом для часового пояса мастерской
		if domain.IsSlotInPast(req.Date, req.Time, uc.timeProvider.Now(), result.Timezone) {
			uc.logger.Warn("CreateAppointment: %s %s is in the past (tz=%s)",
				req.Date.Format(domain.DateFormat), req.Time, result.Timezone)
			return ErrDateInPast
		}

		// 4.3. Время должно входить в список доступных слотов
		slot := result.Slot(req.Time)
		if slot == nil || !slot.Available {
			uc.logger.Warn("CreateAppointment: slot %s %s not available at workshop=%d: %s",
				req.Date.Format(domain.DateFormat), req.Time, workshop.ID, result.Message)
			uc.metrics.ObserveConflict(domain.ConflictSlotNotAvailable)
			return ErrSlotNotAvailable
		}

		// 4.4. Дневной лимит записей на услугу
		if domain.HasDailyLimit(result.DailyLimit) {
			count, err := uc.appointmentRepo.CountByServiceAndDate(txCtx, req.ServiceID, req.Date, nil)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to count appointments for service=%d: %v", req.ServiceID, err)
				return fmt.Errorf("%w: failed to count appointments: %v", ErrInternal, err)
			}
			if count >= *result.DailyLimit {
				uc.logger.Warn("CreateAppointment: daily limit %d/%d reached for service=%d on %s",
					count, *result.DailyLimit, req.ServiceID, req.Date.Format(domain.DateFormat))
				uc.metrics.ObserveConflict(domain.ConflictDailyLimit)
				return ErrDailyServiceLimitReached
			}
		}

		// 4.5. Запись получает первого подходящего мастера-приемщика
		advisorID := slot.EligibleAdvisorIDs()[0]

		appointment := &domain.Appointment{
			ClientID:        req.ClientID,
			WorkshopID:      workshop.ID,
			ServiceID:       req.ServiceID,
			AdvisorID:       &advisorID,
			AppointmentDate: req.Date,
			AppointmentTime: req.Time,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return err
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) || txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: slot %s %s taken concurrently: %v",
				req.Date.Format(domain.DateFormat), req.Time, err)
			uc.metrics.ObserveConflict(domain.ConflictSlotTaken)
			return nil, ErrSlotTaken
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d advisor=%d", created.ID, *created.AdvisorID)

	// 5. Событие для напоминаний публикуется после фиксации транзакции
	if err := uc.publisher.Publish(ctx, events.TypeAppointmentCreated, created); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%d: %v", created.ID, err)
	}

	return toResponse(created, serviceName), nil
}

func (uc *UseCase) mapAvailabilityError(err error, dealershipID int64, req *Request) error {
	switch {
	case errors.Is(err, availability.ErrWorkshopNotFound):
		uc.logger.Warn("CreateAppointment: workshop=%d not found", ptr.Value(req.WorkshopID))
		return ErrWorkshopNotFound
	case errors.Is(err, availability.ErrWorkshopNotInDealership):
		uc.logger.Warn("CreateAppointment: workshop=%d does not belong to dealership=%d", ptr.Value(req.WorkshopID), dealershipID)
		uc.metrics.ObserveConflict(domain.ConflictDealershipMismatch)
		return ErrInvalidWorkshopForDealership
	case errors.Is(err, availability.ErrServiceNotFound):
		uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
		return ErrServiceNotFound
	case txmanager.IsSerializationFailure(err):
		return err
	}

	uc.logger.Error("CreateAppointment: failed to compute availability: %v", err)
	return fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
}

func toResponse(a *domain.Appointment, serviceName string) *Response {
	return &Response{
		ID:              a.ID,
		ClientID:        a.ClientID,
		WorkshopID:      a.WorkshopID,
		ServiceID:       a.ServiceID,
		ServiceName:     serviceName,
		AdvisorID:       a.AdvisorID,
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: a.AppointmentTime,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
