package flow

import (
	"context"
	"fmt"
	"time"

	"bookpage/models"
	"bookpage/upstream"
	"bookpage/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultFlowService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// StartSession creates a new flow session for a business. The business
// profile is snapshotted into the session so every later step validates
// against the same catalogue and policy the customer saw.
func (s *DefaultFlowService) StartSession(ctx context.Context, slug, flowType string) (*models.FlowSession, error) {
	logger := utils.GetLogger()

	biz, err := s.Upstream.GetBusiness(ctx, slug)
	if err != nil {
		logger.Warn("StartSession: failed to fetch business profile", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	biz.Policy = biz.Policy.Normalized()

	steps := ServiceFlowSteps()
	if flowType == "party" {
		steps = PartyFlowSteps()
	}

	sess := &models.FlowSession{
		SessionID: uuid.New().String(),
		Slug:      slug,
		Business:  *biz,
		StepIndex: 0,
		Steps:     steps,
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	logger.Info("StartSession: booking flow started",
		zap.String("sessionID", sess.SessionID), zap.String("slug", slug), zap.Strings("steps", steps))
	return sess, nil
}

// GetSession returns the current session state.
func (s *DefaultFlowService) GetSession(ctx context.Context, sessionID string) (*models.FlowSession, error) {
	return s.Sessions.Load(ctx, sessionID)
}

// Continue runs one forward transition. Invalid input leaves the state and
// draft untouched. On the final step the finished draft is submitted; a
// failed submission re-enters the final step with the draft intact so the
// customer can retry without re-filling the form.
func (s *DefaultFlowService) Continue(ctx context.Context, sessionID string, in StepInput) (*ContinueResult, error) {
	logger := utils.GetLogger()

	sess, err := s.Sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Submitted {
		return nil, upstream.NewValidationError("This booking has already been submitted.")
	}

	step, ok := stepByID(sess.Steps[sess.StepIndex])
	if !ok {
		return nil, fmt.Errorf("unknown step %q in session %s", sess.Steps[sess.StepIndex], sessionID)
	}

	if err := step.Validate(sess, in); err != nil {
		// Local validation never advances the flow or touches the draft.
		return nil, err
	}
	step.Apply(&sess.Draft, in)

	if sess.StepIndex < len(sess.Steps)-1 {
		sess.StepIndex++
		if err := s.Sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return &ContinueResult{Session: sess}, nil
	}

	// Final step: submit instead of advancing.
	booking, err := s.Creator.Create(ctx, sess.Slug, sess.Draft)
	if err != nil {
		// Keep the merged draft so a retry needs no re-entry.
		if saveErr := s.Sessions.Save(ctx, sess); saveErr != nil {
			logger.Error("Continue: failed to save session after create failure",
				zap.String("sessionID", sessionID), zap.Error(saveErr))
		}
		logger.Warn("Continue: booking submission failed",
			zap.String("sessionID", sessionID), zap.String("slug", sess.Slug), zap.Error(err))
		return nil, err
	}

	sess.Submitted = true
	s.gate.Forget(sessionID)
	// The draft's job is done; drop the session rather than letting it linger
	// until the TTL.
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		logger.Warn("Continue: failed to delete submitted session",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	logger.Info("Continue: booking submitted",
		zap.String("sessionID", sessionID), zap.String("bookingID", booking.ID),
		zap.String("reference", booking.Reference), zap.String("status", string(booking.Status)))
	return &ContinueResult{Session: sess, Booking: booking}, nil
}

// Back moves one step backwards without discarding previously collected
// answers, so a customer can revise a later step and return.
func (s *DefaultFlowService) Back(ctx context.Context, sessionID string) (*models.FlowSession, error) {
	sess, err := s.Sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.StepIndex == 0 {
		return nil, upstream.NewValidationError("Already at the first step.")
	}
	sess.StepIndex--
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Abandon discards a flow session and its draft.
func (s *DefaultFlowService) Abandon(ctx context.Context, sessionID string) error {
	s.gate.Forget(sessionID)
	return s.Sessions.Delete(ctx, sessionID)
}
