package services

import "time"

const dayKeyLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayKey(value time.Time) string {
	return value.Format(dayKeyLayout)
}

func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// DaysBetween counts whole calendar days from one date to another. Clock
// components are dropped before subtracting so partial days never round the
// result.
func DaysBetween(from time.Time, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
