package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID   int64            // ID клиента
	WorkshopID *int64           // ID мастерской, nil = основная мастерская дилерского центра клиента
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата записи (без времени)
	Time       types.TimeString // Время начала слота (например, "10:00")
	Notes      *string          // Комментарий клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ClientID        int64
	WorkshopID      int64
	ServiceID       int64
	ServiceName     string
	AdvisorID       *int64
	AppointmentDate time.Time
	AppointmentTime types.TimeString
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
