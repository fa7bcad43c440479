package get_workshop_config

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

type ConfigService interface {
	Get(ctx context.Context, dealershipID, workshopID int64) (*models.WorkshopConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
