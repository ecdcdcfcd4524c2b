package availability

import (
	"time"

	"bookpage/models"
)

// ListDates produces the bounded lookahead calendar: exactly
// policy.AdvanceBookingDays consecutive days starting at today (inclusive).
// Every date appears in the sequence even when unavailable, so callers can
// render a stable calendar grid with unavailable dates disabled.
//
// HasAnySlot is true iff ComputeSlots yields a non-empty sequence for the
// date with the given hours and service duration.
func ListDates(today time.Time, hours models.BusinessHours, policy models.BookingPolicy, durationMinutes int) []models.DateAvailability {
	policy = policy.Normalized()

	out := make([]models.DateAvailability, 0, policy.AdvanceBookingDays)
	for i := 0; i < policy.AdvanceBookingDays; i++ {
		d := today.AddDate(0, 0, i)
		dateStr := d.Format(dateLayout)
		slots := ComputeSlots(dateStr, hours, policy, durationMinutes, today)
		out = append(out, models.DateAvailability{
			Date:       dateStr,
			HasAnySlot: len(slots) > 0,
		})
	}
	return out
}
