package availability

import (
	"fmt"
	"time"

	"bookpage/models"
)

// Conservative fallback window used when a business has published no hours
// at all. Booking stays possible instead of being blocked outright.
const (
	defaultOpenMinute  = 11 * 60 // 11:00
	defaultCloseMinute = 21 * 60 // 21:00
)

const dateLayout = "2006-01-02"

// Interval is a half-open [Start, End) window in minutes from midnight.
type Interval struct {
	Start int
	End   int
}

// parseClock converts "HH:MM" to minutes from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatMinute converts minutes from midnight to "HH:MM".
func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// dayWindow resolves the open/close window for a date. ok is false when the
// business is closed that weekday or the day's hours are missing.
func dayWindow(day time.Time, hours models.BusinessHours) (openMin, closeMin int, ok bool) {
	if len(hours) == 0 {
		return defaultOpenMinute, defaultCloseMinute, true
	}

	dh, configured := hours.ForWeekday(day.Weekday())
	if !configured || dh.Closed {
		return 0, 0, false
	}

	openMin, err := parseClock(dh.Open)
	if err != nil {
		return 0, 0, false
	}
	closeMin, err = parseClock(dh.Close)
	if err != nil {
		return 0, 0, false
	}
	if closeMin <= openMin {
		return 0, 0, false
	}
	return openMin, closeMin, true
}

// ComputeSlots derives the ordered candidate start times for a date from the
// business hours and booking policy. An empty result is a first-class
// "no availability" state, not an error.
//
// Start times step from open by policy.BookingIntervalMinutes; a candidate is
// excluded when start+durationMinutes would run past close. When date is
// today (relative to now), start times strictly before the wall clock are
// excluded so slots are never offered in the past.
func ComputeSlots(date string, hours models.BusinessHours, policy models.BookingPolicy, durationMinutes int, now time.Time) []models.Slot {
	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return []models.Slot{}
	}
	if durationMinutes <= 0 {
		return []models.Slot{}
	}
	policy = policy.Normalized()

	openMin, closeMin, ok := dayWindow(day, hours)
	if !ok {
		return []models.Slot{}
	}

	cutoff := -1
	if date == now.Format(dateLayout) {
		cutoff = now.Hour()*60 + now.Minute()
	}

	slots := make([]models.Slot, 0, (closeMin-openMin)/policy.BookingIntervalMinutes+1)
	for start := openMin; start+durationMinutes <= closeMin; start += policy.BookingIntervalMinutes {
		if start < cutoff {
			continue
		}
		slots = append(slots, models.Slot{Time: formatMinute(start), Available: true})
	}
	return slots
}

// MarkCollisions flags slots that would collide with already booked
// intervals, honouring policy buffer time on both sides of each booking.
//
// The public booking page normally leaves collision checking to the upstream
// availability source and passes no booked intervals; this is the extension
// point for deployments that mirror bookings locally.
func MarkCollisions(slots []models.Slot, durationMinutes, bufferMinutes int, booked []Interval) []models.Slot {
	if len(booked) == 0 {
		return slots
	}

	out := make([]models.Slot, len(slots))
	copy(out, slots)
	for i, s := range out {
		start, err := parseClock(s.Time)
		if err != nil {
			continue
		}
		end := start + durationMinutes
		for _, b := range booked {
			// Buffer reserves dead time between consecutive bookings.
			if start < b.End+bufferMinutes && end > b.Start-bufferMinutes {
				out[i].Available = false
				break
			}
		}
	}
	return out
}

// GroupSlots buckets slots into the three fixed day-parts by start hour:
// [00:00,12:00) morning, [12:00,17:00) afternoon, [17:00,24:00) evening.
// Grouping is a display concern; each slot is bucketed by its own start time,
// so the input order is preserved within each group but never assumed sorted.
// Empty day-parts are omitted.
func GroupSlots(slots []models.Slot) []models.SlotGroup {
	buckets := make(map[models.DayPart][]models.Slot, 3)
	for _, s := range slots {
		start, err := parseClock(s.Time)
		if err != nil {
			continue
		}
		var part models.DayPart
		switch {
		case start < 12*60:
			part = models.DayPartMorning
		case start < 17*60:
			part = models.DayPartAfternoon
		default:
			part = models.DayPartEvening
		}
		buckets[part] = append(buckets[part], s)
	}

	groups := make([]models.SlotGroup, 0, 3)
	for _, p := range []models.DayPart{models.DayPartMorning, models.DayPartAfternoon, models.DayPartEvening} {
		if len(buckets[p]) > 0 {
			groups = append(groups, models.SlotGroup{Part: p, Slots: buckets[p]})
		}
	}
	return groups
}
