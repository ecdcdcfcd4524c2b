package models

// BookingPolicy is the set of scheduling parameters a business configures.
type BookingPolicy struct {
	AdvanceBookingDays      int  `json:"advanceBookingDays"`
	BookingIntervalMinutes  int  `json:"bookingIntervalMinutes"` // 15, 30, 45 or 60
	BufferMinutes           int  `json:"bufferMinutes"`          // 0, 5, 10, 15 or 30
	CancellationNoticeHours int  `json:"cancellationNoticeHours"`
	AutoConfirm             bool `json:"autoConfirm"`
	DepositEnabled          bool `json:"depositEnabled"`
	DepositAmountMinorUnits int  `json:"depositAmountMinorUnits"`
}

const (
	DefaultAdvanceBookingDays     = 60
	DefaultBookingIntervalMinutes = 30
)

var (
	allowedIntervals = map[int]bool{15: true, 30: true, 45: true, 60: true}
	allowedBuffers   = map[int]bool{0: true, 5: true, 10: true, 15: true, 30: true}
)

// Normalized returns a copy of the policy with out-of-range values snapped to
// defaults. Businesses configure these through a loosely validated dashboard,
// so the booking surface degrades rather than rejects.
func (p BookingPolicy) Normalized() BookingPolicy {
	out := p
	if out.AdvanceBookingDays <= 0 {
		out.AdvanceBookingDays = DefaultAdvanceBookingDays
	}
	if !allowedIntervals[out.BookingIntervalMinutes] {
		out.BookingIntervalMinutes = DefaultBookingIntervalMinutes
	}
	if !allowedBuffers[out.BufferMinutes] {
		out.BufferMinutes = 0
	}
	if out.CancellationNoticeHours < 0 || out.CancellationNoticeHours > 48 {
		out.CancellationNoticeHours = 0
	}
	if out.DepositAmountMinorUnits < 0 {
		out.DepositAmountMinorUnits = 0
	}
	return out
}
