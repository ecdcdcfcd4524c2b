package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to confirmed", BookingPending, BookingConfirmed, true},
		{"pending to cancelled", BookingPending, BookingCancelled, true},
		{"pending to no_show", BookingPending, BookingNoShow, true},
		{"pending to completed skips confirmation", BookingPending, BookingCompleted, false},
		{"confirmed to completed", BookingConfirmed, BookingCompleted, true},
		{"confirmed to cancelled", BookingConfirmed, BookingCancelled, true},
		{"confirmed back to pending", BookingConfirmed, BookingPending, false},
		{"cancelled is terminal", BookingCancelled, BookingPending, false},
		{"completed is terminal", BookingCompleted, BookingCancelled, false},
		{"no_show is terminal", BookingNoShow, BookingConfirmed, false},
		{"unknown status", BookingStatus("weird"), BookingConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, BookingPending.IsTerminal())
	assert.False(t, BookingConfirmed.IsTerminal())
	assert.True(t, BookingCompleted.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
	assert.True(t, BookingNoShow.IsTerminal())
}
