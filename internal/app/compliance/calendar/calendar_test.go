// internal/app/compliance/calendar/calendar_test.go
package calendar

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	if _, err := Parse("2025-03-14"); err != nil {
		t.Fatalf("Parse valid date: %v", err)
	}
	for _, bad := range []string{"", "2025-3-14", "14.03.2025", "2025-13-01", "not-a-date"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q): want error, got none", bad)
		}
	}
}

func TestInRangeInclusive(t *testing.T) {
	start, end := Date("2025-03-10"), Date("2025-03-20")

	cases := []struct {
		d    Date
		want bool
	}{
		{"2025-03-09", false},
		{"2025-03-10", true}, // start boundary
		{"2025-03-15", true},
		{"2025-03-20", true}, // end boundary
		{"2025-03-21", false},
	}
	for _, tc := range cases {
		if got := tc.d.InRange(start, end); got != tc.want {
			t.Errorf("InRange(%s): got %v, want %v", tc.d, got, tc.want)
		}
	}
}

func TestInRangeSingleDay(t *testing.T) {
	d := Date("2025-07-01")
	if !d.InRange(d, d) {
		t.Error("single-day range should include its own date")
	}
}

func TestIsWeekend(t *testing.T) {
	cases := []struct {
		d    Date
		want bool
	}{
		{"2025-03-14", false}, // Friday
		{"2025-03-15", true},  // Saturday
		{"2025-03-16", true},  // Sunday
		{"2025-03-17", false}, // Monday
	}
	for _, tc := range cases {
		if got := tc.d.IsWeekend(); got != tc.want {
			t.Errorf("IsWeekend(%s): got %v, want %v", tc.d, got, tc.want)
		}
	}
}

func TestFromTime(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// 23:30 UTC is already the next day in Berlin.
	ts := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	if got := FromTime(ts, berlin); got != "2025-03-15" {
		t.Errorf("FromTime in Berlin: got %s, want 2025-03-15", got)
	}
	if got := FromTime(ts, time.UTC); got != "2025-03-14" {
		t.Errorf("FromTime in UTC: got %s, want 2025-03-14", got)
	}
}

func TestHolidaySet(t *testing.T) {
	set := NewHolidaySet([][2]string{
		{"2025-12-24", "2026-01-06"},
		{"2025-05-01", "2025-05-01"},
		{"garbage", "2025-06-01"},
	})

	cases := []struct {
		date Date
		want bool
	}{
		{"2025-12-24", true},
		{"2025-12-31", true},
		{"2026-01-06", true},
		{"2026-01-07", false},
		{"2025-05-01", true},
		{"2025-05-02", false},
		{"2025-06-01", false},
	}
	for _, tc := range cases {
		if got := set.Contains(tc.date); got != tc.want {
			t.Errorf("Contains(%s): got %v, want %v", tc.date, got, tc.want)
		}
	}
	if len(set) != 2 {
		t.Errorf("invalid entries should be dropped, got %d entries", len(set))
	}
}
