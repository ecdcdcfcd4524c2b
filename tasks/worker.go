package tasks

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bookpage/config"
	journalRepo "bookpage/database/repository/journal"
	"bookpage/models"
	"bookpage/upstream"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitNoticeWorker runs the async worker in background.
func InitNoticeWorker(api upstream.BookingAPI, journal journalRepo.BookingJournalRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingNotice, handleNoticeTask(api, journal))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[NoticeWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NoticeWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NoticeWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleNoticeTask(api upstream.BookingAPI, journal journalRepo.BookingJournalRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var n models.BookingNotice
		if err := json.Unmarshal(task.Payload(), &n); err != nil {
			log.Printf("[NoticeHandler] Invalid payload: %v", err)
			return err
		}

		switch n.Kind {
		case "reminder":
			// Deferred check: re-read the booking and nudge only if it is
			// still waiting on confirmation when the cancellation window closes.
			booking, err := api.GetBooking(ctx, n.Slug, n.BookingID)
			if err != nil {
				log.Printf("[NoticeHandler] Reminder for %s could not fetch booking: %v", n.BookingID, err)
				return err
			}
			if booking.Status != models.BookingPending {
				return nil
			}
			log.Printf("[NoticeHandler] Booking %s (%s) still unconfirmed at cancellation cutoff", n.BookingID, n.Reference)
			if _, err := journal.Record(ctx, models.JournalEntry{
				Slug:      n.Slug,
				BookingID: n.BookingID,
				Reference: n.Reference,
				Action:    "reminder",
				Status:    booking.Status,
				Date:      booking.Date,
				Time:      booking.Time,
			}); err != nil {
				log.Printf("[NoticeHandler] Failed to journal reminder for %s: %v", n.BookingID, err)
			}
			return nil

		case "created", "cancelled":
			log.Printf("[NoticeHandler] Delivering %s notice for booking %s (%s) to %s on %s %s",
				n.Kind, n.BookingID, n.Reference, n.Email, n.Date, n.Time)
			return nil

		default:
			log.Printf("[NoticeHandler] Unknown notice kind: %s", n.Kind)
			return nil
		}
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NoticeWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
