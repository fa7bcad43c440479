package update_workshop_config

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

type ConfigService interface {
	Update(ctx context.Context, dealershipID, workshopID int64, req *models.UpdateConfigRequest) (*models.WorkshopConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
