package domain

import "time"

// WeekdayKeys names of weekdays as used in column suffixes and JSON keys, indexed by time.Weekday
var WeekdayKeys = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// WeekdayFlags one boolean per weekday, indexed by time.Weekday
type WeekdayFlags [7]bool

// On returns the flag for the given weekday
func (f WeekdayFlags) On(day time.Weekday) bool {
	if day < time.Sunday || day > time.Saturday {
		return false
	}
	return f[day]
}

// WeekdayLimits one integer per weekday, indexed by time.Weekday
type WeekdayLimits [7]int

// For returns the limit for the given weekday
func (l WeekdayLimits) For(day time.Weekday) int {
	if day < time.Sunday || day > time.Saturday {
		return 0
	}
	return l[day]
}
