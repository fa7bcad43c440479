package domain

// Default configuration values
const (
	DefaultShiftDurationMinutes = 30
	DefaultTimezone             = "UTC"
	DefaultLookaheadDays        = 14
)

// Business validation constants
const (
	MinShiftDurationMinutes = 5
	MaxShiftDurationMinutes = 480 // 8 hours
	MaxLookaheadDays        = 90
	MaxNotesLength          = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие слот мастера-приемщика
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusInProgress,
}

// Виды конфликтов при записи (метки метрик)
const (
	ConflictSlotNotAvailable   = "slot_not_available"
	ConflictSlotTaken          = "slot_taken"
	ConflictDailyLimit         = "daily_limit"
	ConflictDealershipMismatch = "dealership_mismatch"
)
