package update_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// AvailabilityService интерфейс расчета доступности слотов
type AvailabilityService interface {
	Compute(ctx context.Context, q availability.Query) (*availability.Result, error)
	ResolveWorkshop(ctx context.Context, dealershipID int64, workshopID *int64) (*domain.Workshop, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	CountByServiceAndDate(ctx context.Context, serviceID int64, date time.Time, excludeID *int64) (int, error)
}

// ClientRepository интерфейс чтения клиентов
type ClientRepository interface {
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
}

// CatalogRepository интерфейс чтения услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий записи
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, appointment *domain.Appointment) error
}

// Metrics метрики конфликтов записи
type Metrics interface {
	ObserveConflict(kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
