package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Уровни, с которых взята конфигурация смен
const (
	LevelWorkshop   = "workshop"
	LevelDealership = "dealership"
	LevelDefault    = "default"
)

// Request модели

// UpdateConfigRequest запрос на обновление настроек мастерской
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	ShiftDurationMinutes *int    `json:"shiftDurationMinutes,omitempty"`
	Timezone             *string `json:"timezone,omitempty"`
}

// ApplyTo применяет обновления к конфигурации
func (r *UpdateConfigRequest) ApplyTo(cfg *domain.DealershipConfiguration) {
	if r.ShiftDurationMinutes != nil {
		cfg.ShiftDurationMinutes = *r.ShiftDurationMinutes
	}
	if r.Timezone != nil {
		cfg.Timezone = *r.Timezone
	}
}

// Response модели

// OperatingHoursResponse график работы на день недели
type OperatingHoursResponse struct {
	Weekday                 string  `json:"weekday"` // "monday"
	IsWorkingDay            bool    `json:"isWorkingDay"`
	OpeningTime             string  `json:"openingTime,omitempty"`
	ClosingTime             string  `json:"closingTime,omitempty"`
	ReceptionEndTime        *string `json:"receptionEndTime,omitempty"`
	MaxSimultaneousServices int     `json:"maxSimultaneousServices"`
}

// WorkshopConfigResponse действующие настройки расписания мастерской
type WorkshopConfigResponse struct {
	DealershipID         int64                    `json:"dealershipId"`
	WorkshopID           int64                    `json:"workshopId"`
	ShiftDurationMinutes int                      `json:"shiftDurationMinutes"`
	Timezone             string                   `json:"timezone"`
	Level                string                   `json:"level"`
	OperatingHours       []OperatingHoursResponse `json:"operatingHours"`
	UpdatedAt            *time.Time               `json:"updatedAt,omitempty"`
}

// FromDomain собирает ответ из конфигурации (может быть nil) и графика работы
func FromDomain(dealershipID, workshopID int64, cfg *domain.DealershipConfiguration, hours []*domain.OperatingHours) *WorkshopConfigResponse {
	resp := &WorkshopConfigResponse{
		DealershipID:         dealershipID,
		WorkshopID:           workshopID,
		ShiftDurationMinutes: domain.DefaultShiftDurationMinutes,
		Level:                LevelDefault,
		OperatingHours:       make([]OperatingHoursResponse, 0, len(hours)),
	}

	if cfg != nil {
		resp.ShiftDurationMinutes = cfg.ShiftDurationMinutes
		resp.Timezone = cfg.Timezone
		resp.Level = LevelDealership
		if cfg.IsWorkshopSpecific() {
			resp.Level = LevelWorkshop
		}
		if !cfg.UpdatedAt.IsZero() {
			updated := cfg.UpdatedAt
			resp.UpdatedAt = &updated
		}
	}

	for _, h := range hours {
		item := OperatingHoursResponse{
			Weekday:                 domain.WeekdayKeys[h.Weekday],
			IsWorkingDay:            h.IsWorkingDay,
			OpeningTime:             h.OpeningTime.String(),
			ClosingTime:             h.ClosingTime.String(),
			MaxSimultaneousServices: h.MaxSimultaneousServices,
		}
		if h.ReceptionEndTime != nil {
			reception := h.ReceptionEndTime.String()
			item.ReceptionEndTime = &reception
		}
		resp.OperatingHours = append(resp.OperatingHours, item)
	}

	return resp
}
