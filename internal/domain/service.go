package domain

// Service a workshop service that can be booked. Read-only for scheduling
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	AvailableOn     WeekdayFlags
	DailyLimit      *int // nil = no limit
}

// HasDailyLimit returns true if limit restricts bookings per day. Non-positive values mean no limit
func HasDailyLimit(limit *int) bool {
	return limit != nil && *limit > 0
}
