package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/events"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для изменения, переноса и отмены записи
type UseCase struct {
	availability    AvailabilityService
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityService,
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:    availability,
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute применяет частичное изменение записи.
// Отмена не проверяет доступность. Перенос по дате, времени или мастерской проходит проверку конфликтов
// в той же сериализуемой транзакции, что и сохранение, поэтому при отказе запись не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d, cancel=%t, reschedule=%t, serviceChange=%t",
		req.AppointmentID, req.Patch.IsCancellation(), req.Patch.ChangesSchedule(), req.Patch.ServiceID != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	patch := req.Patch
	var updated *domain.Appointment
	var eventType string

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Текущая запись (блокируется до конца транзакции)
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		next := *current

		switch {
		// 3а. Отмена: только статус, отметка времени и комментарии
		case patch.IsCancellation():
			now := uc.timeProvider.Now()
			next.Status = domain.StatusCancelled
			next.CancelledAt = &now
			applyNotes(&next, patch)
			eventType = events.TypeAppointmentCancelled

		// 3б. Перенос: проверка конфликтов по итоговым дате, времени и мастерской
		case patch.ChangesSchedule():
			if !current.IsActive() {
				uc.logger.Warn("UpdateAppointment: appointment id=%d has status %s, cannot reschedule",
					current.ID, current.Status)
				return ErrAppointmentNotActive
			}

			advisorID, err := uc.validateReschedule(txCtx, current, patch)
			if err != nil {
				return err
			}

			t := resolveTarget(current, patch)
			next.AppointmentDate = t.date
			next.AppointmentTime = t.time
			next.WorkshopID = t.workshopID
			next.ServiceID = t.serviceID
			next.AdvisorID = &advisorID
			applyStatusAndNotes(&next, patch)
			eventType = events.TypeAppointmentRescheduled

		// 3в. Смена услуги без переноса проверяет только дневной лимит
		case patch.ServiceID != nil && *patch.ServiceID != current.ServiceID:
			service, err := uc.catalogRepo.GetByID(txCtx, *patch.ServiceID)
			if err != nil {
				if errors.Is(err, catalogRepo.ErrServiceNotFound) {
					uc.logger.Warn("UpdateAppointment: service id=%d not found", *patch.ServiceID)
					return ErrServiceNotFound
				}
				uc.logger.Error("UpdateAppointment: failed to get service id=%d: %v", *patch.ServiceID, err)
				return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
			}
			if err := uc.checkDailyLimit(txCtx, current.ID, current.AppointmentDate, service.ID, service.DailyLimit); err != nil {
				return err
			}
			next.ServiceID = service.ID
			applyStatusAndNotes(&next, patch)

		default:
			applyStatusAndNotes(&next, patch)
		}

		// 4. Сохранение всех изменений одним запросом
		updated, err = uc.appointmentRepo.Update(txCtx, &next)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return err
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) || txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("UpdateAppointment: slot taken concurrently for appointment id=%d: %v", req.AppointmentID, err)
			uc.metrics.ObserveConflict(domain.ConflictSlotTaken)
			return nil, ErrSlotTaken
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			uc.logger.Error("UpdateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: updated appointment id=%d status=%s date=%s time=%s",
		updated.ID, updated.Status, updated.AppointmentDate.Format(domain.DateFormat), updated.AppointmentTime)

	// 5. События публикуются после фиксации транзакции
	if eventType != "" {
		if err := uc.publisher.Publish(ctx, eventType, updated); err != nil {
			uc.logger.Warn("UpdateAppointment: failed to publish %s for appointment id=%d: %v", eventType, updated.ID, err)
		}
	}

	return toResponse(updated), nil
}

// validateReschedule проверяет перенос записи и возвращает мастера-приемщика для целевого слота
func (uc *UseCase) validateReschedule(ctx context.Context, current *domain.Appointment, patch domain.AppointmentPatch) (int64, error) {
	t := resolveTarget(current, patch)

	// Дилерский центр определяется клиентом записи
	client, err := uc.clientRepo.GetClient(ctx, current.ClientID)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to get client id=%d: %v", current.ClientID, err)
		return 0, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// Новая мастерская должна принадлежать дилерскому центру клиента
	if t.workshopID != current.WorkshopID {
		if _, err := uc.availability.ResolveWorkshop(ctx, client.DealershipID, &t.workshopID); err != nil {
			return 0, uc.mapAvailabilityError(err, client.DealershipID, t)
		}
	}

	// Пересчет доступности без самой переносимой записи
	result, err := uc.availability.Compute(ctx, availability.Query{
		Date:                 t.date,
		ServiceID:            t.serviceID,
		DealershipID:         client.DealershipID,
		WorkshopID:           &t.workshopID,
		ExcludeAppointmentID: &current.ID,
	})
	if err != nil {
		return 0, uc.mapAvailabilityError(err, client.DealershipID, t)
	}

	if domain.IsSlotInPast(t.date, t.time, uc.timeProvider.Now(), result.Timezone) {
		uc.logger.Warn("UpdateAppointment: target %s %s is in the past for appointment id=%d",
			t.date.Format(domain.DateFormat), t.time, current.ID)
		return 0, ErrDateInPast
	}

	slot := result.Slot(t.time)
	if slot == nil || !slot.Available {
		uc.logger.Warn("UpdateAppointment: slot %s %s not available at workshop=%d for appointment id=%d",
			t.date.Format(domain.DateFormat), t.time, t.workshopID, current.ID)
		uc.metrics.ObserveConflict(domain.ConflictSlotNotAvailable)
		return 0, ErrSlotNotAvailable
	}

	if t.serviceID != current.ServiceID {
		if err := uc.checkDailyLimit(ctx, current.ID, t.date, t.serviceID, result.DailyLimit); err != nil {
			return 0, err
		}
	}

	return pickAdvisor(current.AdvisorID, slot.EligibleAdvisorIDs()), nil
}

// checkDailyLimit считает неотмененные записи на услугу в дату, кроме appointmentID
func (uc *UseCase) checkDailyLimit(ctx context.Context, appointmentID int64, date time.Time, serviceID int64, limit *int) error {
	if !domain.HasDailyLimit(limit) {
		return nil
	}

	count, err := uc.appointmentRepo.CountByServiceAndDate(ctx, serviceID, date, &appointmentID)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to count appointments for service=%d: %v", serviceID, err)
		return fmt.Errorf("%w: failed to count appointments: %v", ErrInternal, err)
	}

	if count >= *limit {
		uc.logger.Warn("UpdateAppointment: daily limit %d/%d reached for service=%d on %s",
			count, *limit, serviceID, date.Format(domain.DateFormat))
		uc.metrics.ObserveConflict(domain.ConflictDailyLimit)
		return ErrDailyServiceLimitReached
	}

	return nil
}

func (uc *UseCase) mapAvailabilityError(err error, dealershipID int64, t target) error {
	switch {
	case errors.Is(err, availability.ErrWorkshopNotFound):
		uc.logger.Warn("UpdateAppointment: workshop=%d not found", t.workshopID)
		return ErrWorkshopNotFound
	case errors.Is(err, availability.ErrWorkshopNotInDealership):
		uc.logger.Warn("UpdateAppointment: workshop=%d does not belong to dealership=%d", t.workshopID, dealershipID)
		uc.metrics.ObserveConflict(domain.ConflictDealershipMismatch)
		return ErrInvalidWorkshopForDealership
	case errors.Is(err, availability.ErrServiceNotFound):
		uc.logger.Warn("UpdateAppointment: service id=%d not found", t.serviceID)
		return ErrServiceNotFound
	case txmanager.IsSerializationFailure(err):
		return err
	}

	uc.logger.Error("UpdateAppointment: failed to compute availability: %v", err)
	return fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
}

func applyNotes(a *domain.Appointment, p domain.AppointmentPatch) {
	if p.Notes != nil {
		a.Notes = p.Notes
	}
	if p.CompletionNotes != nil {
		a.CompletionNotes = p.CompletionNotes
	}
}

func applyStatusAndNotes(a *domain.Appointment, p domain.AppointmentPatch) {
	if p.Status != nil {
		a.Status = *p.Status
	}
	applyNotes(a, p)
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		ClientID:        a.ClientID,
		WorkshopID:      a.WorkshopID,
		ServiceID:       a.ServiceID,
		AdvisorID:       a.AdvisorID,
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: a.AppointmentTime,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CompletionNotes: a.CompletionNotes,
		CancelledAt:     a.CancelledAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
