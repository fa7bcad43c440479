package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date                 time.Time // Дата (без времени)
	ServiceID            int64     // ID услуги
	DealershipID         int64     // ID дилерского центра
	WorkshopID           *int64    // ID мастерской (опционально, по умолчанию основная)
	ExcludeAppointmentID *int64    // Запись, которая переносится (опционально)
	Probe                bool      // Только проверить, открыта ли запись на дату, без списка слотов
}

// Response модель ответа со списком слотов
type Response struct {
	Date              time.Time
	WorkshopID        int64
	ServiceID         int64
	ServiceName       string
	Available         bool
	Slots             []Slot // nil при Probe
	Message           string
	NextAvailableSlot *NextSlot
}

// Slot модель временного слота
type Slot struct {
	Time          types.TimeString // Время начала слота (например, "10:00")
	Available     bool             // Есть хотя бы один свободный мастер
	TotalCapacity int              // Количество свободных мастеров
	Details       []AdvisorDetail  // Решение по каждому мастеру
}

// AdvisorDetail решение по одному мастеру-приемщику
type AdvisorDetail struct {
	AdvisorID   int64
	AdvisorName string
	Eligible    bool
	Reason      string
}

// NextSlot ближайший свободный слот после запрошенной даты
type NextSlot struct {
	Date    time.Time
	Time    types.TimeString
	Weekday string
}
