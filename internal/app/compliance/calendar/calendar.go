// internal/app/compliance/calendar/calendar.go
//
// Package calendar handles civil dates. All due-today logic runs on
// "YYYY-MM-DD" strings in the deployment time zone; the fixed-width
// form makes lexical comparison equal to chronological comparison, so
// range checks never touch time.Time and never shift across DST.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the civil date form used throughout the service.
const Layout = "2006-01-02"

// Date is a civil date in "YYYY-MM-DD" form.
type Date string

// Today returns the current civil date in the given location.
func Today(loc *time.Location) Date {
	return Date(time.Now().In(loc).Format(Layout))
}

// FromTime converts a timestamp to the civil date it falls on in the
// given location.
func FromTime(t time.Time, loc *time.Location) Date {
	return Date(t.In(loc).Format(Layout))
}

// Parse validates a civil date string.
func Parse(s string) (Date, error) {
	if _, err := time.Parse(Layout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// Time returns the date at midnight in the given location. The
// receiver must be a valid date.
func (d Date) Time(loc *time.Location) time.Time {
	t, _ := time.ParseInLocation(Layout, string(d), loc)
	return t
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Time(time.UTC).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// InRange reports whether the date lies within [start, end], both ends
// inclusive. Fixed-width dates compare correctly as strings.
func (d Date) InRange(start, end Date) bool {
	return start <= d && d <= end
}

// Span is an inclusive civil date range.
type Span struct {
	Start Date
	End   Date
}

// HolidaySet answers membership queries for skip-holiday checks.
// Holidays are date ranges, so membership is an overlap test.
type HolidaySet []Span

// NewHolidaySet builds a set from [start, end] civil date pairs.
// Invalid entries are skipped; a malformed holiday row should not
// break every assignment that skips holidays.
func NewHolidaySet(ranges [][2]string) HolidaySet {
	set := make(HolidaySet, 0, len(ranges))
	for _, r := range ranges {
		start, err := Parse(r[0])
		if err != nil {
			continue
		}
		end, err := Parse(r[1])
		if err != nil {
			continue
		}
		set = append(set, Span{Start: start, End: end})
	}
	return set
}

// Contains reports whether the date falls inside any holiday range.
func (h HolidaySet) Contains(d Date) bool {
	for _, s := range h {
		if d.InRange(s.Start, s.End) {
			return true
		}
	}
	return false
}
