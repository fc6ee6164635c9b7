package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no-show"
)

// Blocks reports whether a booking in this status occupies its time
// interval for conflict purposes. A pending booking expresses intent and
// blocks just like a confirmed one; terminal statuses free the interval.
func (s BookingStatus) Blocks() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// Booking represents an appointment between a client and a business.
// Times are carried both as "HH:MM" strings (API surface) and as
// minutes-from-midnight ints (Start/End) so overlap queries run on ints.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	BusinessID string `bson:"businessId" json:"businessId"`
	ClientID   string `bson:"clientId" json:"clientId"`
	ServiceID  string `bson:"serviceId,omitempty" json:"serviceId,omitempty"`

	Date      string `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Duration  int    `bson:"duration" json:"duration"` // minutes
	Start     int    `bson:"start" json:"-"`           // minutes from midnight
	End       int    `bson:"end" json:"-"`

	Status BookingStatus `bson:"status" json:"status"`
	Notes  string        `bson:"notes,omitempty" json:"notes,omitempty"`

	Price             float64 `bson:"price" json:"price"`
	TotalPrice        float64 `bson:"totalPrice" json:"totalPrice"`
	DepositRequired   bool    `bson:"depositRequired" json:"depositRequired"`
	DepositPercentage int     `bson:"depositPercentage,omitempty" json:"depositPercentage,omitempty"`
	DepositAmount     float64 `bson:"depositAmount,omitempty" json:"depositAmount,omitempty"`

	CancelledBy        string `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"` // "client" or "professional"
	CancellationReason string `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingInput is the payload for creating a booking proposal.
type BookingInput struct {
	BusinessID string `json:"businessId" binding:"required"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime  string `json:"startTime" binding:"required"` // "HH:MM"
	Duration   int    `json:"duration" binding:"required"`  // minutes
	Notes      string `json:"notes"`
	Price      float64 `json:"price"`
}
