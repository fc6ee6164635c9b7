package booking

import (
	"errors"
	"fmt"
)

// ErrSlotTaken signals that the proposed interval conflicts with an
// existing blocking booking. Callers surface it as "slot no longer
// available, please pick another time".
var ErrSlotTaken = errors.New("slot no longer available")

// ValidationError marks malformed booking input (bad times, non-positive
// duration, unknown date).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransitionError marks a status change the lifecycle does not allow,
// e.g. confirming a cancelled booking.
type TransitionError struct {
	From, To string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}
