package utils

import (
	"path"
	"strings"
	"time"

	"insa-partnership-backend/internal/domain"
)

// DaysInMonth returns the number of days in a given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddDuration computes an end date from a start date plus a partnership
// duration. Months and years are added on the calendar; when the start day
// does not exist in the target month the result clamps to the last day of
// that month (2024-01-31 + 1 month = 2024-02-29, not March).
func AddDuration(start time.Time, d domain.Duration) time.Time {
	months := d.Value
	if d.Unit != domain.DurationUnitMonths {
		months = d.Value * 12
	}

	year := start.Year()
	month := int(start.Month()) - 1 + months
	year += month / 12
	month = month % 12
	if month < 0 {
		month += 12
		year--
	}
	targetMonth := time.Month(month + 1)

	day := start.Day()
	if last := DaysInMonth(year, targetMonth); day > last {
		day = last
	}

	return time.Date(year, targetMonth, day,
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location())
}

// NormalizeFileName strips any directory components from an attachment
// reference, leaving the bare filename. Uploads arrive with either slash
// style, so both are handled here and nowhere else.
func NormalizeFileName(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Base(p)
}
