package lifecycle

import (
	"context"
	"strings"
	"time"

	"bookpage/models"
	"bookpage/upstream"
	"bookpage/utils"

	"go.uber.org/zap"
)

func (s *DefaultLifecycleService) now() time.Time {
	if s.NowFn != nil {
		return s.NowFn()
	}
	return time.Now()
}

// validateDraft checks the required fields locally before anything leaves the
// process, so obviously incomplete drafts never hit the wire.
func validateDraft(draft models.BookingDraft) error {
	if draft.ServiceID == "" && draft.PartySize < 1 {
		return upstream.NewValidationError("A service or party size is required.")
	}
	if draft.Date == "" || draft.Time == "" {
		return upstream.NewValidationError("A date and time are required.")
	}
	if draft.Customer == nil ||
		strings.TrimSpace(draft.Customer.Name) == "" ||
		strings.TrimSpace(draft.Customer.Email) == "" ||
		strings.TrimSpace(draft.Customer.Phone) == "" {
		return upstream.NewValidationError("Name, email and phone are required.")
	}
	return nil
}

// Create submits a finished draft to the upstream store. The returned
// booking arrives in status pending or confirmed depending on the business's
// autoConfirm policy; the server decides, not this client.
func (s *DefaultLifecycleService) Create(ctx context.Context, slug string, draft models.BookingDraft) (*models.Booking, error) {
	logger := utils.GetLogger()

	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	booking, err := s.API.CreateBooking(ctx, slug, draft)
	if err != nil {
		return nil, err
	}

	logger.Info("Create: booking created",
		zap.String("slug", slug), zap.String("bookingID", booking.ID),
		zap.String("reference", booking.Reference), zap.String("status", string(booking.Status)))

	s.journal(ctx, slug, booking, "created")
	s.notify(slug, booking, "created")
	s.scheduleReminder(ctx, slug, booking)

	return booking, nil
}

// Fetch reads a booking by id.
func (s *DefaultLifecycleService) Fetch(ctx context.Context, slug, bookingID string) (*models.Booking, error) {
	return s.API.GetBooking(ctx, slug, bookingID)
}

// Reschedule moves a booking to a new date and time.
func (s *DefaultLifecycleService) Reschedule(ctx context.Context, slug, bookingID, date, clock string) (*models.Booking, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, upstream.NewValidationError("A valid date is required to reschedule.")
	}
	if _, err := time.Parse("15:04", clock); err != nil {
		return nil, upstream.NewValidationError("A valid time is required to reschedule.")
	}

	booking, err := s.API.UpdateBooking(ctx, slug, bookingID, upstream.BookingUpdate{Date: date, Time: clock})
	if err != nil {
		return nil, err
	}

	s.journal(ctx, slug, booking, "rescheduled")
	return booking, nil
}

// Cancel moves a booking to its cancelled terminal state. Cancelling an
// already-cancelled booking is a no-op returning the same terminal state,
// not an error.
func (s *DefaultLifecycleService) Cancel(ctx context.Context, slug, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	booking, err := s.API.GetBooking(ctx, slug, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingCancelled {
		return booking, nil
	}
	if !models.CanTransition(booking.Status, models.BookingCancelled) {
		return nil, upstream.NewValidationError("This booking can no longer be cancelled.")
	}

	cancelled, err := s.API.CancelBooking(ctx, slug, bookingID)
	if err != nil {
		return nil, err
	}

	logger.Info("Cancel: booking cancelled",
		zap.String("slug", slug), zap.String("bookingID", bookingID))

	s.journal(ctx, slug, cancelled, "cancelled")
	s.notify(slug, cancelled, "cancelled")

	return cancelled, nil
}

func (s *DefaultLifecycleService) journal(ctx context.Context, slug string, booking *models.Booking, action string) {
	if s.Journal == nil {
		return
	}
	_, err := s.Journal.Record(ctx, models.JournalEntry{
		Slug:      slug,
		BookingID: booking.ID,
		Reference: booking.Reference,
		Action:    action,
		Status:    booking.Status,
		Date:      booking.Date,
		Time:      booking.Time,
	})
	if err != nil {
		utils.GetLogger().Warn("journal write failed",
			zap.String("bookingID", booking.ID), zap.String("action", action), zap.Error(err))
	}
}

func (s *DefaultLifecycleService) notify(slug string, booking *models.Booking, kind string) {
	if s.Notices == nil {
		return
	}
	err := s.Notices.EnqueueBookingNotice(models.BookingNotice{
		Kind:      kind,
		Slug:      slug,
		BookingID: booking.ID,
		Reference: booking.Reference,
		Email:     booking.Customer.Email,
		Date:      booking.Date,
		Time:      booking.Time,
	})
	if err != nil {
		utils.GetLogger().Warn("notice enqueue failed",
			zap.String("bookingID", booking.ID), zap.String("kind", kind), zap.Error(err))
	}
}

// scheduleReminder queues a deferred check at the cancellation cutoff for
// bookings that still await confirmation. Best-effort: the business profile
// fetch and the enqueue may both fail without affecting the create.
func (s *DefaultLifecycleService) scheduleReminder(ctx context.Context, slug string, booking *models.Booking) {
	if s.Notices == nil || booking.Status != models.BookingPending {
		return
	}
	logger := utils.GetLogger()

	biz, err := s.API.GetBusiness(ctx, slug)
	if err != nil {
		logger.Warn("reminder skipped: business profile unavailable", zap.String("slug", slug), zap.Error(err))
		return
	}
	policy := biz.Policy.Normalized()
	if policy.CancellationNoticeHours == 0 {
		return
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.Time, s.now().Location())
	if err != nil {
		return
	}
	fireAt := start.Add(-time.Duration(policy.CancellationNoticeHours) * time.Hour)
	if !fireAt.After(s.now()) {
		return
	}

	err = s.Notices.EnqueueBookingReminder(models.BookingNotice{
		Kind:      "reminder",
		Slug:      slug,
		BookingID: booking.ID,
		Reference: booking.Reference,
		Email:     booking.Customer.Email,
		Date:      booking.Date,
		Time:      booking.Time,
	}, fireAt)
	if err != nil {
		logger.Warn("reminder enqueue failed", zap.String("bookingID", booking.ID), zap.Error(err))
	}
}
