package models

// Slot is a single bookable start time for a given date and service.
// Immutable value, recomputed per request and never persisted.
type Slot struct {
	Time      string `json:"time"` // "HH:MM", 24h
	Available bool   `json:"available"`
}

// DayPart is a fixed display grouping of slots by start hour.
type DayPart string

const (
	DayPartMorning   DayPart = "morning"   // [00:00, 12:00)
	DayPartAfternoon DayPart = "afternoon" // [12:00, 17:00)
	DayPartEvening   DayPart = "evening"   // [17:00, 24:00)
)

// SlotGroup is a day-part bucket of slots, preserving canonical slot order.
type SlotGroup struct {
	Part  DayPart `json:"part"`
	Slots []Slot  `json:"slots"`
}

// DateAvailability flags a calendar date as having at least one open slot.
type DateAvailability struct {
	Date       string `json:"date"` // "YYYY-MM-DD"
	HasAnySlot bool   `json:"hasAnySlot"`
}
