package models

import "time"

// DayHours is the published open/close window for a single weekday.
type DayHours struct {
	Open   string `bson:"open" json:"open"`     // "HH:MM", 24h
	Close  string `bson:"close" json:"close"`   // "HH:MM", 24h
	Closed bool   `bson:"closed" json:"closed"` // true when the business does not open that day
}

// BusinessHours maps lowercase weekday names ("monday".."sunday") to their hours.
// A missing weekday entry is treated the same as an empty open/close pair.
type BusinessHours map[string]DayHours

// WeekdayKey returns the lowercase key used in BusinessHours for a weekday.
func WeekdayKey(w time.Weekday) string {
	switch w {
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
	default:
		return "sunday"
	}
}

// ForWeekday returns the configured hours for a weekday and whether any were configured.
func (bh BusinessHours) ForWeekday(w time.Weekday) (DayHours, bool) {
	if bh == nil {
		return DayHours{}, false
	}
	dh, ok := bh[WeekdayKey(w)]
	if !ok || (!dh.Closed && (dh.Open == "" || dh.Close == "")) {
		return DayHours{}, false
	}
	return dh, true
}

// Business is the public booking profile for a single business, keyed by slug.
type Business struct {
	Slug       string        `json:"slug"`
	Name       string        `json:"name"`
	Timezone   string        `json:"timezone,omitempty"`
	Hours      BusinessHours `json:"hours,omitempty"`
	Services   []Service     `json:"services"`
	Staff      []Staff       `json:"staff,omitempty"`
	Categories []string      `json:"categories,omitempty"`
	Policy     BookingPolicy `json:"settings"`
}

// StaffByID looks up a staff member in the business roster.
func (b Business) StaffByID(id string) (Staff, bool) {
	for _, s := range b.Staff {
		if s.ID == id {
			return s, true
		}
	}
	return Staff{}, false
}

// ServiceByID looks up a service in the business catalogue.
func (b Business) ServiceByID(id string) (Service, bool) {
	for _, s := range b.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
