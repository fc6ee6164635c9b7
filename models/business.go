package models

import "time"

// OpeningHours is a single day's working window, wall-clock "HH:MM".
type OpeningHours struct {
	Open   string `bson:"open" json:"open"`
	Close  string `bson:"close" json:"close"`
	IsOpen bool   `bson:"isOpen" json:"isOpen"`
}

// BreakWindow is a sub-interval of the open hours with no bookable slots,
// e.g. a lunch break.
type BreakWindow struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// WeekSchedule maps lowercase weekday names ("monday".."sunday") to that
// day's opening hours.
type WeekSchedule map[string]OpeningHours

// Day returns the schedule entry for t's weekday.
func (ws WeekSchedule) Day(t time.Time) (OpeningHours, bool) {
	h, ok := ws[weekdayKey(t.Weekday())]
	return h, ok
}

func weekdayKey(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	}
	return "sunday"
}

type Address struct {
	Street     string  `bson:"street" json:"street"`
	City       string  `bson:"city" json:"city"`
	PostalCode string  `bson:"postalCode" json:"postalCode"`
	Country    string  `bson:"country" json:"country"`
	Latitude   float64 `bson:"latitude" json:"latitude"`
	Longitude  float64 `bson:"longitude" json:"longitude"`
}

// Service is one bookable offering of a business (e.g. "Men's cut").
type Service struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Duration    int     `bson:"duration" json:"duration"` // minutes
	Price       float64 `bson:"price" json:"price"`
	Category    string  `bson:"category,omitempty" json:"category,omitempty"`
}

type GalleryImage struct {
	ID         string    `bson:"id" json:"id"`
	ImageURL   string    `bson:"imageUrl" json:"imageUrl"`
	Caption    string    `bson:"caption,omitempty" json:"caption,omitempty"`
	ServiceID  string    `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Business is a service professional's profile (barber, salon, spa).
type Business struct {
	ID          string         `bson:"id" json:"id"`
	OwnerID     string         `bson:"ownerId" json:"ownerId"`
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Logo        string         `bson:"logo,omitempty" json:"logo,omitempty"`
	CoverImage  string         `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Gallery     []GalleryImage `bson:"gallery,omitempty" json:"gallery,omitempty"`
	Address     Address        `bson:"address" json:"address"`
	Tags        []string       `bson:"tags,omitempty" json:"tags,omitempty"`
	Services    []Service      `bson:"services,omitempty" json:"services,omitempty"`
	Schedule    WeekSchedule   `bson:"schedule" json:"schedule"`
	Break       *BreakWindow   `bson:"break,omitempty" json:"break,omitempty"`

	Rating       float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	ReviewCount  int     `bson:"reviewCount,omitempty" json:"reviewCount,omitempty"`
	BookingCount int     `bson:"bookingCount,omitempty" json:"bookingCount,omitempty"`

	RequiresDeposit   bool `bson:"requiresDeposit" json:"requiresDeposit"`
	DepositPercentage int  `bson:"depositPercentage,omitempty" json:"depositPercentage,omitempty"`

	IsActive   bool      `bson:"isActive" json:"isActive"`
	IsVerified bool      `bson:"isVerified" json:"isVerified"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ServiceByID looks up a service on the business by its ID.
func (b *Business) ServiceByID(id string) (Service, bool) {
	for _, s := range b.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
