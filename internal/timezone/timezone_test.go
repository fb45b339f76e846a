package timezone

import (
	"testing"
	"time"
)

func TestLocation_FallsBackToUTC(t *testing.T) {
	for _, tz := range []string{"", "Mars/Olympus_Mons"} {
		if got := Location(tz); got != time.UTC {
			t.Errorf("Location(%q) = %v, want UTC", tz, got)
		}
	}
}

func TestMonthRange(t *testing.T) {
	ts := time.Date(2026, time.December, 17, 15, 30, 0, 0, time.UTC)
	start, end := MonthRange(ts)

	if want := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if want := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}

func TestDayStart(t *testing.T) {
	ts := time.Date(2026, time.March, 3, 23, 59, 0, 0, time.UTC)
	if got := DayStart(ts); !got.Equal(time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DayStart = %v", got)
	}
}
