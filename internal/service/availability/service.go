package availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Исходы расчета для метрик
const (
	outcomeAvailable   = "available"
	outcomeUnavailable = "unavailable"
	outcomeClosed      = "closed"
	outcomeError       = "error"
)

// Service расчет доступных слотов записи
type Service struct {
	loader    *Loader
	evaluator *Evaluator
	metrics   Metrics
	logger    Logger
}

// NewService создает сервис расчета доступности
func NewService(loader *Loader, evaluator *Evaluator, metrics Metrics, logger Logger) *Service {
	return &Service{
		loader:    loader,
		evaluator: evaluator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Compute рассчитывает доступность слотов на дату.
// Ошибки чтения данных возвращаются как ErrInternal и никогда не превращаются в пустой результат
func (s *Service) Compute(ctx context.Context, q Query) (*Result, error) {
	day, err := s.loader.Load(ctx, q)
	if err != nil {
		s.observe(outcomeError)
		return nil, err
	}

	result := Aggregate(day, s.evaluator)

	switch {
	case result.Closure != ClosureNone:
		s.observe(outcomeClosed)
		s.logger.Info("Compute: workshop=%d date=%s service=%d closed: %s",
			result.WorkshopID, q.Date.Format(domain.DateFormat), q.ServiceID, result.Message)
	case result.Available():
		s.observe(outcomeAvailable)
	default:
		s.observe(outcomeUnavailable)
	}

	return result, nil
}

// ResolveWorkshop возвращает мастерскую запроса
func (s *Service) ResolveWorkshop(ctx context.Context, dealershipID int64, workshopID *int64) (*domain.Workshop, error) {
	return s.loader.ResolveWorkshop(ctx, dealershipID, workshopID)
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveAvailability(outcome)
	}
}
