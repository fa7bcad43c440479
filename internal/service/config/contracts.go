package config

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ConfigRepository интерфейс репозитория графика и длительности смен
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, dealershipID, workshopID int64) (*domain.DealershipConfiguration, error)
	Upsert(ctx context.Context, cfg *domain.DealershipConfiguration) (*domain.DealershipConfiguration, error)
	ListOperatingHours(ctx context.Context, workshopID int64) ([]*domain.OperatingHours, error)
}

// WorkshopRepository интерфейс репозитория мастерских
type WorkshopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Workshop, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
