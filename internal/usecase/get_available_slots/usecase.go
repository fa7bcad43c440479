package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// MessageProbe сообщение для ответа без списка слотов
const MessageProbe = "slot list omitted; repeat the request without probe for slot details"

// UseCase use case для получения доступных слотов записи
type UseCase struct {
	availability  AvailabilityService
	lookaheadDays int
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, lookaheadDays int, logger Logger) *UseCase {
	if lookaheadDays <= 0 {
		lookaheadDays = domain.DefaultLookaheadDays
	}
	return &UseCase{
		availability:  availability,
		lookaheadDays: lookaheadDays,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: dealership=%d, workshop=%d, service=%d, date=%s, exclude=%d, probe=%t",
		req.DealershipID, ptr.Value(req.WorkshopID), req.ServiceID, req.Date.Format(domain.DateFormat),
		ptr.Value(req.ExcludeAppointmentID), req.Probe)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Расчет доступности на запрошенную дату
	query := availability.Query{
		Date:                 req.Date,
		ServiceID:            req.ServiceID,
		DealershipID:         req.DealershipID,
		WorkshopID:           req.WorkshopID,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	}

	result, err := uc.compute(ctx, query)
	if err != nil {
		return nil, err
	}

	// 3. Дата не должна быть в прошлом относительно часового пояса мастерской
	if isDateInPast(req.Date, uc.timeProvider.Now(), result.Timezone) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past (tz=%s)",
			req.Date.Format(domain.DateFormat), result.Timezone)
		return nil, ErrDateInPast
	}

	response := &Response{
		Date:        result.Date,
		WorkshopID:  result.WorkshopID,
		ServiceID:   result.ServiceID,
		ServiceName: result.ServiceName,
		Available:   result.Available(),
		Message:     result.Message,
	}

	if req.Probe {
		if response.Message == "" {
			response.Message = MessageProbe
		}
	} else {
		response.Slots = toSlots(result.Slots)
	}

	// 4. Поиск ближайшего свободного слота в следующие дни
	if !response.Available {
		next, err := uc.findNextAvailable(ctx, query)
		if err != nil {
			return nil, err
		}
		response.NextAvailableSlot = next
	}

	uc.logger.Info("GetAvailableSlots: workshop=%d date=%s available=%t slots=%d",
		response.WorkshopID, req.Date.Format(domain.DateFormat), response.Available, len(result.Slots))

	return response, nil
}

// findNextAvailable просматривает следующие дни в пределах lookaheadDays
func (uc *UseCase) findNextAvailable(ctx context.Context, query availability.Query) (*NextSlot, error) {
	start := query.Date
	for i := 1; i <= uc.lookaheadDays; i++ {
		query.Date = start.AddDate(0, 0, i)

		result, err := uc.compute(ctx, query)
		if err != nil {
			return nil, err
		}

		if slot := result.FirstAvailable(); slot != nil {
			return &NextSlot{
				Date:    query.Date,
				Time:    slot.Time,
				Weekday: query.Date.Weekday().String(),
			}, nil
		}
	}

	uc.logger.Info("GetAvailableSlots: no available slots within %d days after %s",
		uc.lookaheadDays, start.Format(domain.DateFormat))
	return nil, nil
}

func (uc *UseCase) compute(ctx context.Context, query availability.Query) (*availability.Result, error) {
	result, err := uc.availability.Compute(ctx, query)
	if err == nil {
		return result, nil
	}

	switch {
	case errors.Is(err, availability.ErrWorkshopNotFound):
		uc.logger.Warn("GetAvailableSlots: workshop=%d not found", ptr.Value(query.WorkshopID))
		return nil, ErrWorkshopNotFound
	case errors.Is(err, availability.ErrWorkshopNotInDealership):
		uc.logger.Warn("GetAvailableSlots: workshop=%d does not belong to dealership=%d",
			ptr.Value(query.WorkshopID), query.DealershipID)
		return nil, ErrInvalidWorkshopForDealership
	case errors.Is(err, availability.ErrServiceNotFound):
		uc.logger.Warn("GetAvailableSlots: service id=%d not found", query.ServiceID)
		return nil, ErrServiceNotFound
	}

	uc.logger.Error("GetAvailableSlots: failed to compute availability for %s: %v",
		query.Date.Format(domain.DateFormat), err)
	return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
}

func toSlots(slots []domain.SlotAvailability) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		details := make([]AdvisorDetail, 0, len(s.Details))
		for _, d := range s.Details {
			details = append(details, AdvisorDetail{
				AdvisorID:   d.AdvisorID,
				AdvisorName: d.AdvisorName,
				Eligible:    d.Eligible,
				Reason:      d.Reason,
			})
		}
		result = append(result, Slot{
			Time:          s.Time,
			Available:     s.Available,
			TotalCapacity: s.TotalCapacity,
			Details:       details,
		})
	}
	return result
}
