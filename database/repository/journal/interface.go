package journalRepo

import (
	"context"

	"bookpage/config"
	"bookpage/database"
	"bookpage/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingJournalRepository records booking activity that passed through this
// gateway.
type BookingJournalRepository interface {
	Record(ctx context.Context, entry models.JournalEntry) (string, error)
	GetByBookingID(ctx context.Context, bookingID string) ([]models.JournalEntry, error)
	GetRecentBySlug(ctx context.Context, slug string, limit int64) ([]models.JournalEntry, error)
}

type mongoJournalRepo struct {
	coll *mongo.Collection
}

// NewMongoJournalRepo returns a BookingJournalRepository backed by MongoDB.
func NewMongoJournalRepo() BookingJournalRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoJournalRepo{
		coll: db.Collection("booking_journal"),
	}
}
