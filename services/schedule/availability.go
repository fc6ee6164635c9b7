package schedule

import (
	"fmt"

	"imara/models"
)

// HasConflict reports whether the proposed interval [start, start+duration)
// on the given day overlaps any blocking booking in the supplied set. Only
// bookings on the same calendar day whose status blocks (pending or
// confirmed) are considered; touching endpoints never conflict.
//
// The caller fetches the bookings; this function does no I/O.
func HasConflict(bookings []models.Booking, date string, start TimeOfDay, duration int) bool {
	end := start.Add(duration)
	for _, b := range bookings {
		if b.Date != date || !b.Status.Blocks() {
			continue
		}
		if Overlaps(start, end, TimeOfDay(b.Start), TimeOfDay(b.End)) {
			return true
		}
	}
	return false
}

// ProposedInterval parses and validates a proposed (startTime, duration)
// pair, returning the half-open minute interval it spans.
func ProposedInterval(startTime string, duration int) (start, end TimeOfDay, err error) {
	if duration <= 0 {
		return 0, 0, fmt.Errorf("duration must be positive, got %d", duration)
	}
	start, err = ParseClock(startTime)
	if err != nil {
		return 0, 0, err
	}
	end = start.Add(duration)
	if end > 24*60 {
		return 0, 0, fmt.Errorf("interval %s+%dmin runs past midnight", startTime, duration)
	}
	return start, end, nil
}

// MarkConflicts flags generated slots that overlap a blocking booking as
// unavailable, leaving break/unavailable flags untouched. Used by the
// slots endpoint so clients see taken slots greyed out before selecting.
func MarkConflicts(slots []models.TimeSlot, bookings []models.Booking, date string, slotDuration int) []models.TimeSlot {
	for i := range slots {
		if !slots[i].Available {
			continue
		}
		start, err := ParseClock(slots[i].Time)
		if err != nil {
			continue
		}
		if HasConflict(bookings, date, start, slotDuration) {
			slots[i].Available = false
		}
	}
	return slots
}
