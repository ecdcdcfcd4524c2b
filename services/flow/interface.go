package flow

import (
	"context"
	"time"

	"bookpage/models"
	"bookpage/upstream"
)

// BookingCreator is the slice of the lifecycle service the flow needs: the
// final continue transition hands the finished draft to it.
type BookingCreator interface {
	Create(ctx context.Context, slug string, draft models.BookingDraft) (*models.Booking, error)
}

// FlowService walks a customer through the booking steps and owns the
// session state in between.
type FlowService interface {
	StartSession(ctx context.Context, slug, flowType string) (*models.FlowSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.FlowSession, error)
	Continue(ctx context.Context, sessionID string, in StepInput) (*ContinueResult, error)
	Back(ctx context.Context, sessionID string) (*models.FlowSession, error)
	Abandon(ctx context.Context, sessionID string) error
	Dates(ctx context.Context, sessionID string) ([]models.DateAvailability, error)
	Slots(ctx context.Context, sessionID, date string) (*SlotsResult, error)
}

// ContinueResult reports where a continue transition landed. Booking is
// non-nil only when the final step submitted successfully.
type ContinueResult struct {
	Session *models.FlowSession `json:"session"`
	Booking *models.Booking     `json:"booking,omitempty"`
}

// SlotsResult is one date's availability, both as the canonical ordered
// sequence and grouped into day-parts for display.
type SlotsResult struct {
	Date   string             `json:"date"`
	Slots  []models.Slot      `json:"slots"`
	Groups []models.SlotGroup `json:"groups"`
}

// DefaultFlowService implements FlowService.
type DefaultFlowService struct {
	Sessions SessionStore
	Upstream upstream.BookingAPI
	Creator  BookingCreator

	gate latestRequestGate
	// Now is the clock used for availability computation; nil means time.Now.
	Now func() time.Time
}
