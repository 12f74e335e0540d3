// Package availability decides whether an instant falls inside an offering's
// weekly schedule.
package availability

import (
	"regexp"
	"strconv"
	"time"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
)

// Weekday keys indexed by time.Weekday: Sunday is 0 and maps to "sun".
var dayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

func DayKey(t time.Time) string {
	return dayKeys[int(t.Weekday())]
}

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ParseClock parses an "HH:mm" string into minutes since midnight.
func ParseClock(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return h*60 + min, true
}

// Within reports whether at is admitted by the weekly schedule. Bounds are
// inclusive: the end boundary covers the final second of the end minute. A
// day marked available with no times set is open all day.
func Within(avail []domain.DayAvailability, at time.Time) bool {
	key := DayKey(at)

	var entry *domain.DayAvailability
	for i := range avail {
		if avail[i].Day == key {
			entry = &avail[i]
			break
		}
	}
	if entry == nil || !entry.Available {
		return false
	}

	if entry.StartTime == "" || entry.EndTime == "" {
		return true
	}

	startMin, ok := ParseClock(entry.StartTime)
	if !ok {
		return false
	}
	endMin, ok := ParseClock(entry.EndTime)
	if !ok {
		return false
	}

	atSec := at.Hour()*3600 + at.Minute()*60 + at.Second()
	startSec := startMin * 60
	endSec := endMin*60 + 59

	return atSec >= startSec && atSec <= endSec
}
