package journalRepo

import (
	"context"
	"time"

	"bookpage/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record inserts a new journal entry and returns its ID.
func (r *mongoJournalRepo) Record(ctx context.Context, entry models.JournalEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		return "", err
	}
	return entry.ID, nil
}

// GetByBookingID fetches all journal entries for one booking, oldest first.
func (r *mongoJournalRepo) GetByBookingID(ctx context.Context, bookingID string) ([]models.JournalEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.JournalEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetRecentBySlug fetches the latest journal entries for a business.
func (r *mongoJournalRepo) GetRecentBySlug(ctx context.Context, slug string, limit int64) ([]models.JournalEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"slug": slug}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.JournalEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
