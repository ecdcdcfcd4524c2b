package tasks

import (
	"encoding/json"
	"time"

	"bookpage/config"
	"bookpage/models"

	"github.com/hibiken/asynq"
)

const TypeBookingNotice = "booking:notice"

// NewBookingNoticeTask builds an immediate notice task (created/cancelled).
func NewBookingNoticeTask(payload models.BookingNotice) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingNotice, b), nil
}

// NewBookingReminderTask builds a notice task deferred until fireAt.
func NewBookingReminderTask(payload models.BookingNotice, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingNotice, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Enqueuer wraps the asynq client for the lifecycle service.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer builds an Enqueuer against the configured redis task queue.
func NewEnqueuer() *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskQueueDB,
		}),
	}
}

func (e *Enqueuer) EnqueueBookingNotice(notice models.BookingNotice) error {
	task, err := NewBookingNoticeTask(notice)
	if err != nil {
		return err
	}
	_, err = e.client.Enqueue(task)
	return err
}

func (e *Enqueuer) EnqueueBookingReminder(notice models.BookingNotice, fireAt time.Time) error {
	task, opts, err := NewBookingReminderTask(notice, fireAt)
	if err != nil {
		return err
	}
	_, err = e.client.Enqueue(task, opts...)
	return err
}
