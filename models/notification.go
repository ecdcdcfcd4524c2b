package models

// BookingNotice is the payload for background booking notifications.
type BookingNotice struct {
	Kind      string `json:"kind"` // "created", "cancelled", "reminder"
	Slug      string `json:"slug"`
	BookingID string `json:"bookingId"`
	Reference string `json:"reference"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}
