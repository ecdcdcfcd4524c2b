package models

import "time"

// JournalEntry is one line of the gateway's booking activity journal. The
// upstream store stays authoritative for bookings; the journal only records
// what passed through this gateway, for the management screens.
type JournalEntry struct {
	ID        string        `bson:"id" json:"id"`
	Slug      string        `bson:"slug" json:"slug"`
	BookingID string        `bson:"booking_id" json:"bookingId"`
	Reference string        `bson:"reference" json:"reference"`
	Action    string        `bson:"action" json:"action"` // "created", "rescheduled", "cancelled", "reminder"
	Status    BookingStatus `bson:"status" json:"status"`
	Date      string        `bson:"date" json:"date"`
	Time      string        `bson:"time" json:"time"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}
