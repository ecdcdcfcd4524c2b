package lifecycle

import (
	"context"
	"time"

	journalRepo "bookpage/database/repository/journal"
	"bookpage/models"
	"bookpage/upstream"
)

// LifecycleService owns a reservation's lifecycle against the upstream
// booking store: create, fetch, reschedule, cancel.
type LifecycleService interface {
	Create(ctx context.Context, slug string, draft models.BookingDraft) (*models.Booking, error)
	Fetch(ctx context.Context, slug, bookingID string) (*models.Booking, error)
	Reschedule(ctx context.Context, slug, bookingID, date, clock string) (*models.Booking, error)
	Cancel(ctx context.Context, slug, bookingID string) (*models.Booking, error)
}

// NoticeQueue enqueues background booking notifications.
type NoticeQueue interface {
	EnqueueBookingNotice(notice models.BookingNotice) error
	EnqueueBookingReminder(notice models.BookingNotice, fireAt time.Time) error
}

// DefaultLifecycleService implements LifecycleService. Journal and Notices
// are best-effort side channels; either may be nil and neither can fail an
// operation.
type DefaultLifecycleService struct {
	API     upstream.BookingAPI
	Journal journalRepo.BookingJournalRepository
	Notices NoticeQueue

	// NowFn is the clock used for reminder scheduling; nil means time.Now.
	NowFn func() time.Time
}
