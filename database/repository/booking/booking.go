package bookingRepo

import (
	"context"

	"imara/models"
)

// BookingRepository is the persistence port for bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	GetByClient(ctx context.Context, clientID string, status models.BookingStatus) ([]models.Booking, error)
	GetByBusiness(ctx context.Context, businessID string) ([]models.Booking, error)
	// GetDayBookings returns a business's bookings on one calendar day,
	// regardless of status. Callers apply the blocking policy themselves.
	GetDayBookings(ctx context.Context, businessID, date string) ([]models.Booking, error)

	// CreateIfAvailable inserts the booking inside a transaction that first
	// re-counts blocking overlaps on the same business and day. It returns
	// ErrSlotTaken when the interval was claimed between the advisory check
	// and the write.
	CreateIfAvailable(ctx context.Context, booking *models.Booking) error

	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
	Cancel(ctx context.Context, bookingID, reason, cancelledBy string) error
}
