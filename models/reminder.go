package models

// ReminderPayload is the asynq task payload for a scheduled booking
// reminder push.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"` // RFC3339
}
