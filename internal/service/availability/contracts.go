package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// WorkshopRepository интерфейс репозитория мастерских
type WorkshopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Workshop, error)
	GetMainByDealership(ctx context.Context, dealershipID int64) (*domain.Workshop, error)
	GetBlockedDates(ctx context.Context, workshopID int64, date time.Time) ([]*domain.BlockedDate, error)
}

// ConfigRepository интерфейс репозитория графика работы и длительности смен
type ConfigRepository interface {
	GetOperatingHours(ctx context.Context, workshopID int64, weekday time.Weekday) (*domain.OperatingHours, error)
	GetConfigWithHierarchy(ctx context.Context, dealershipID, workshopID int64) (*domain.DealershipConfiguration, error)
}

// AdvisorRepository интерфейс репозитория мастеров-приемщиков
type AdvisorRepository interface {
	ListActiveByWorkshop(ctx context.Context, workshopID int64) ([]*domain.ServiceAdvisor, error)
	ListSlotConfigurations(ctx context.Context, advisorIDs []int64) ([]*domain.AdvisorSlotConfiguration, error)
}

// CatalogRepository интерфейс репозитория услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Metrics метрики расчета доступности
type Metrics interface {
	ObserveAvailability(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
