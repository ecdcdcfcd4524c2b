package models

// BookingDraft accumulates a customer's choices as they walk the flow.
// One flow session owns exactly one draft; it is mutated only by continue
// transitions and discarded on flow exit or after successful submission.
type BookingDraft struct {
	ServiceID string    `json:"serviceId,omitempty"`
	StaffID   string    `json:"staffId,omitempty"`
	PartySize int       `json:"partySize,omitempty"`
	Date      string    `json:"date,omitempty"` // "YYYY-MM-DD"
	Time      string    `json:"time,omitempty"` // "HH:MM", 24h
	Customer  *Customer `json:"customer,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}
