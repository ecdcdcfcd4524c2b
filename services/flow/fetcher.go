package flow

import (
	"context"
	"errors"
	"sync"

	"bookpage/models"
	"bookpage/services/availability"
	"bookpage/upstream"
	"bookpage/utils"

	"go.uber.org/zap"
)

// ErrSuperseded marks an availability result that resolved after a newer
// request was issued for the same session. The caller must drop it.
var ErrSuperseded = errors.New("availability request superseded by a newer one")

// latestRequestGate enforces last-request-wins per session: every fetch takes
// a generation on entry; a result only commits if no newer generation was
// issued while it was in flight.
type latestRequestGate struct {
	mu   sync.Mutex
	gens map[string]uint64
}

func (g *latestRequestGate) Begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gens == nil {
		g.gens = make(map[string]uint64)
	}
	g.gens[key]++
	return g.gens[key]
}

func (g *latestRequestGate) Commit(key string, gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gens[key] == gen
}

func (g *latestRequestGate) Forget(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.gens, key)
}

// sessionDuration resolves the slot duration for the session's current draft:
// the chosen service's duration, or one booking interval for party flows.
func sessionDuration(sess *models.FlowSession) int {
	if sess.Draft.ServiceID != "" {
		if svc, ok := sess.Business.ServiceByID(sess.Draft.ServiceID); ok {
			return svc.DurationMinutes
		}
	}
	return sess.Business.Policy.Normalized().BookingIntervalMinutes
}

// Dates returns the bounded lookahead calendar for the session. The locally
// computed window is authoritative for shape (exactly advanceBookingDays
// consecutive days starting today); upstream per-date flags overlay it when
// the server-side availability source is reachable.
func (s *DefaultFlowService) Dates(ctx context.Context, sessionID string) ([]models.DateAvailability, error) {
	logger := utils.GetLogger()

	sess, err := s.Sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	policy := sess.Business.Policy.Normalized()

	dates := availability.ListDates(s.now(), sess.Business.Hours, policy, sessionDuration(sess))

	remote, err := s.Upstream.GetDates(ctx, sess.Slug, upstream.DatesQuery{
		ServiceID: sess.Draft.ServiceID,
		PartySize: sess.Draft.PartySize,
		Days:      policy.AdvanceBookingDays,
	})
	if err != nil {
		// The local computation already covers the window; the server-side
		// source is an overlay, not a prerequisite.
		logger.Warn("Dates: upstream date flags unavailable, using local computation",
			zap.String("sessionID", sessionID), zap.Error(err))
		return dates, nil
	}

	for i := range dates {
		if has, ok := remote[dates[i].Date]; ok {
			dates[i].HasAnySlot = has
		}
	}
	return dates, nil
}

// Slots returns one date's slots for the session. The upstream availability
// source is authoritative when reachable (it knows about booked-out times);
// otherwise slots are computed locally from hours and policy. When the
// customer switches dates while a fetch is still in flight, the stale result
// is discarded and ErrSuperseded returned (last request wins).
func (s *DefaultFlowService) Slots(ctx context.Context, sessionID, date string) (*SlotsResult, error) {
	logger := utils.GetLogger()

	sess, err := s.Sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	gen := s.gate.Begin(sessionID)
	sess.AvailabilityGen = gen
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	duration := sessionDuration(sess)
	policy := sess.Business.Policy.Normalized()

	slots, err := s.Upstream.GetAvailability(ctx, sess.Slug, upstream.AvailabilityQuery{
		Date:      date,
		ServiceID: sess.Draft.ServiceID,
		StaffID:   sess.Draft.StaffID,
		PartySize: sess.Draft.PartySize,
	})
	if err != nil {
		logger.Warn("Slots: upstream availability unavailable, computing locally",
			zap.String("sessionID", sessionID), zap.String("date", date), zap.Error(err))
		slots = availability.ComputeSlots(date, sess.Business.Hours, policy, duration, s.now())
	}

	if !s.gate.Commit(sessionID, gen) {
		logger.Debug("Slots: discarding stale availability result",
			zap.String("sessionID", sessionID), zap.String("date", date), zap.Uint64("gen", gen))
		return nil, ErrSuperseded
	}

	return &SlotsResult{
		Date:   date,
		Slots:  slots,
		Groups: availability.GroupSlots(slots),
	}, nil
}
