package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"imara/config"
	bookingRepo "imara/database/repository/booking"
	"imara/models"
	"imara/services/notification"
	"imara/services/tasks"
)

// AsynqReminderScheduler enqueues reminder tasks for delayed delivery.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler builds a scheduler backed by the reminder
// queue Redis DB.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(reminderRedisOpts())
	return &AsynqReminderScheduler{client: client}
}

// Schedule enqueues a reminder push to fire at the given time.
func (s *AsynqReminderScheduler) Schedule(payload models.ReminderPayload, at time.Time) error {
	task, opts, err := tasks.NewReminderTask(payload, at)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}

// Close releases the underlying asynq client.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}

func reminderRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService, bookings bookingRepo.BookingRepository) {
	srv := asynq.NewServer(
		reminderRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, bookings))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService, bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		// The booking may have been cancelled since the reminder was queued.
		b, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			log.Printf("[ReminderHandler] failed to load booking %s: %v", p.BookingID, err)
			return err
		}
		if b.Status != models.BookingConfirmed {
			log.Printf("[ReminderHandler] booking %s is %s, dropping reminder", p.BookingID, b.Status)
			return nil
		}

		log.Printf("[ReminderHandler] triggering reminder for booking %s → %s", p.BookingID, p.UserID)

		data := map[string]string{
			"bookingId": p.BookingID,
			"fireDate":  p.FireDate,
			"type":      "booking_reminder",
		}

		if err := notifSvc.SendUserPush(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}
