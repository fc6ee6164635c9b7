package booking

import (
	"context"

	"imara/models"
)

// BookingService owns the appointment lifecycle: availability checks,
// slot listings, creation with conflict protection, and status
// transitions.
type BookingService interface {
	// DaySlots returns the bookable slots for a business on one day, with
	// break and already-booked slots marked unavailable.
	DaySlots(ctx context.Context, businessID, date string, slotDuration int) ([]models.TimeSlot, error)

	// CheckAvailability reports whether the proposed interval is free of
	// blocking bookings. A failed bookings fetch reports unavailable.
	CheckAvailability(ctx context.Context, businessID, date, startTime string, duration int) (bool, error)

	Create(ctx context.Context, clientID string, input models.BookingInput) (*models.Booking, error)
	Confirm(ctx context.Context, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, reason, cancelledBy string) error
	Complete(ctx context.Context, bookingID string) error
	MarkNoShow(ctx context.Context, bookingID string) error

	ClientBookings(ctx context.Context, clientID string, status models.BookingStatus) ([]models.Booking, error)
	BusinessBookings(ctx context.Context, businessID string) ([]models.Booking, error)
}
