package models

import "time"

// BookingStatus is the lifecycle status of a submitted booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

// allowedTransitions encodes the forward-only status machine. Cancelled,
// completed and no_show are terminal; no_show is set by the business side.
var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:   {BookingConfirmed: true, BookingCancelled: true, BookingNoShow: true},
	BookingConfirmed: {BookingCompleted: true, BookingCancelled: true, BookingNoShow: true},
	BookingCompleted: {},
	BookingCancelled: {},
	BookingNoShow:    {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// IsTerminal reports whether no further transition leaves the status.
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Customer holds the contact details collected on the final flow step.
type Customer struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Booking is a persisted reservation. The upstream booking store owns it;
// this gateway reads and writes it through the lifecycle service only.
type Booking struct {
	ID        string        `bson:"id" json:"id"`
	Reference string        `bson:"reference" json:"reference"` // display code shown to the customer
	Status    BookingStatus `bson:"status" json:"status"`
	Date      string        `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time      string        `bson:"time" json:"time"` // "HH:MM", 24h
	Service   Service       `bson:"service" json:"service"`
	Staff     *Staff        `bson:"staff,omitempty" json:"staff,omitempty"`
	PartySize int           `bson:"partySize,omitempty" json:"partySize,omitempty"`
	Customer  Customer      `bson:"customer" json:"customer"`
	Notes     string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}
