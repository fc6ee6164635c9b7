package schedule

import (
	"fmt"
	"time"

	"imara/models"
)

// DefaultSlotDuration is the slot length used when a service does not
// specify its own.
const DefaultSlotDuration = 30

// GenerateSlots produces the ordered list of bookable start times for one
// calendar day of a business, earliest first, spaced slotDuration minutes
// apart. A slot is emitted only when it fits entirely before closing time.
// Slots inside the optional break window are kept but marked unavailable;
// on the current day, slots whose start is not strictly in the future are
// omitted outright.
//
// Closed or degenerate hours (open >= close, window shorter than one slot)
// yield an empty list rather than an error: a closed business is a normal
// state, not a fault. The caller supplies now explicitly so the result is
// deterministic.
func GenerateSlots(hours models.OpeningHours, date time.Time, slotDuration int, brk *models.BreakWindow, now time.Time) ([]models.TimeSlot, error) {
	if slotDuration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", slotDuration)
	}

	open, err := ParseClock(hours.Open)
	if err != nil {
		return nil, nil
	}
	close, err := ParseClock(hours.Close)
	if err != nil {
		return nil, nil
	}
	if open >= close {
		return nil, nil
	}

	var breakStart, breakEnd TimeOfDay
	hasBreak := false
	if brk != nil {
		bs, err1 := ParseClock(brk.Start)
		be, err2 := ParseClock(brk.End)
		if err1 == nil && err2 == nil && bs < be {
			breakStart, breakEnd = bs, be
			hasBreak = true
		}
	}

	isToday := date.Format("2006-01-02") == now.Format("2006-01-02")
	cutoff := MinuteOfDay(now)

	var slots []models.TimeSlot
	for start := open; start.Add(slotDuration) <= close; start = start.Add(slotDuration) {
		if isToday && start <= cutoff {
			continue
		}
		end := start.Add(slotDuration)
		available := true
		if hasBreak && Overlaps(start, end, breakStart, breakEnd) {
			available = false
		}
		slots = append(slots, models.TimeSlot{
			Time:      start.Clock(),
			Available: available,
		})
	}
	return slots, nil
}
