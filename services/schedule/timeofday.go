package schedule

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes from midnight.
// "HH:MM" strings are parsed into this type at the boundary so all
// interval arithmetic happens on plain ints.
type TimeOfDay int

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// Clock returns the "HH:MM" representation, zero-padded.
func (t TimeOfDay) Clock() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns t shifted by the given number of minutes. Minute overflow
// carries into the hour by construction.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// MinuteOfDay converts a timestamp to minutes from midnight in its own
// location.
func MinuteOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// DateKey formats a timestamp as the "YYYY-MM-DD" day key used throughout
// the data model.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching endpoints do not overlap.
func Overlaps(s1, e1, s2, e2 TimeOfDay) bool {
	return s1 < e2 && e1 > s2
}
