package availability

import (
	"testing"
	"time"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
)

func tuesdayAt(hour, min, sec int) time.Time {
	// 2025-06-03 is a Tuesday.
	return time.Date(2025, 6, 3, hour, min, sec, 0, time.UTC)
}

func weekSchedule(day string, start, end string) []domain.DayAvailability {
	days := []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
	out := make([]domain.DayAvailability, 0, len(days))
	for _, d := range days {
		entry := domain.DayAvailability{Day: d}
		if d == day {
			entry.Available = true
			entry.StartTime = start
			entry.EndTime = end
		}
		out = append(out, entry)
	}
	return out
}

func TestWithinBoundaries(t *testing.T) {
	sched := weekSchedule("tue", "09:00", "17:00")

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"exact start", tuesdayAt(9, 0, 0), true},
		{"last second of end minute", tuesdayAt(17, 0, 59), true},
		{"one second before start", tuesdayAt(8, 59, 59), false},
		{"one minute past end", tuesdayAt(17, 1, 0), false},
		{"mid window", tuesdayAt(12, 30, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Within(sched, tc.at); got != tc.want {
				t.Errorf("Within(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestWithinSundayMapsToSunEntry(t *testing.T) {
	// 2025-06-01 is a Sunday. A schedule open only on "sun" must admit it; a
	// schedule open only on "mon" must not.
	sunday := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	if !Within(weekSchedule("sun", "09:00", "17:00"), sunday) {
		t.Error("Sunday instant rejected by sun entry")
	}
	if Within(weekSchedule("mon", "09:00", "17:00"), sunday) {
		t.Error("Sunday instant admitted by mon entry")
	}
}

func TestWithinOpenAllDayWhenTimesUnset(t *testing.T) {
	sched := []domain.DayAvailability{{Day: "tue", Available: true}}
	if !Within(sched, tuesdayAt(0, 0, 1)) {
		t.Error("open day rejected just after midnight")
	}
	if !Within(sched, tuesdayAt(23, 59, 59)) {
		t.Error("open day rejected just before midnight")
	}
}

func TestWithinClosedCases(t *testing.T) {
	if Within(nil, tuesdayAt(10, 0, 0)) {
		t.Error("empty schedule admitted an instant")
	}
	sched := []domain.DayAvailability{{Day: "tue", Available: false, StartTime: "09:00", EndTime: "17:00"}}
	if Within(sched, tuesdayAt(10, 0, 0)) {
		t.Error("unavailable day admitted an instant")
	}
	// Malformed times reject rather than admit.
	bad := []domain.DayAvailability{{Day: "tue", Available: true, StartTime: "9am", EndTime: "17:00"}}
	if Within(bad, tuesdayAt(10, 0, 0)) {
		t.Error("malformed start time admitted an instant")
	}
}

func TestParseClock(t *testing.T) {
	if v, ok := ParseClock("09:30"); !ok || v != 570 {
		t.Errorf("ParseClock(09:30) = %d, %v", v, ok)
	}
	if _, ok := ParseClock("24:00"); ok {
		t.Error("ParseClock accepted 24:00")
	}
	if _, ok := ParseClock("9:30"); ok {
		t.Error("ParseClock accepted single-digit hour")
	}
}
