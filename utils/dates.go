// utils/dates.go
package utils

import "time"

// BookingDateLayout is the wire format for booking dates.
const BookingDateLayout = "2006-01-02"

// BookingTimeLayout is the wire format for booking times.
const BookingTimeLayout = "15:04"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}
