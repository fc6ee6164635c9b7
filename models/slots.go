package models

// TimeSlot is one candidate appointment start time offered to a client.
// Slots are generated per render, never persisted.
type TimeSlot struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
}
