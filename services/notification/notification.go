package notification

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	userRepo "imara/database/repository/user"
	"imara/models"
	"imara/utils"
)

// ReminderLeadTime is how long before an appointment the reminder push
// fires.
const ReminderLeadTime = 24 * time.Hour

// ReminderScheduler enqueues a reminder payload for delivery at a given
// time. The asynq-backed implementation lives in the cron package.
type ReminderScheduler interface {
	Schedule(payload models.ReminderPayload, at time.Time) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users     userRepo.UserRepository
	Scheduler ReminderScheduler
}

func NewDefaultNotificationService(users userRepo.UserRepository, scheduler ReminderScheduler) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{Users: users, Scheduler: scheduler}, nil
}

// SendUserPush looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPush: user %s has no FCM token", userID)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPush: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("push sent", zap.String("userId", userID), zap.String("response", response))
	return nil
}

func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, booking *models.Booking, businessName string) error {
	title := "Booking confirmed"
	body := fmt.Sprintf("Your appointment at %s on %s at %s is confirmed. See you there!",
		businessName, booking.Date, booking.StartTime)
	return s.SendUserPush(ctx, booking.ClientID, title, body, map[string]string{
		"type":      "booking_confirmed",
		"bookingId": booking.ID,
	})
}

func (s *DefaultNotificationService) NotifyBookingCancelled(ctx context.Context, booking *models.Booking, recipientID string) error {
	title := "Booking cancelled"
	body := fmt.Sprintf("The appointment on %s at %s was cancelled.", booking.Date, booking.StartTime)
	if booking.CancellationReason != "" {
		body = fmt.Sprintf("%s Reason: %s", body, booking.CancellationReason)
	}
	return s.SendUserPush(ctx, recipientID, title, body, map[string]string{
		"type":      "booking_cancelled",
		"bookingId": booking.ID,
	})
}

func (s *DefaultNotificationService) NotifyNewMessage(ctx context.Context, conv *models.Conversation, msg *models.Message) error {
	recipientID := conv.ProfessionalID
	if msg.SenderID == conv.ProfessionalID {
		recipientID = conv.ClientID
	}
	body := msg.Text
	if body == "" {
		body = "Sent an attachment"
	}
	return s.SendUserPush(ctx, recipientID, msg.SenderName, body, map[string]string{
		"type":           "chat_message",
		"conversationId": conv.ID,
	})
}

// ScheduleBookingReminder enqueues a reminder for ReminderLeadTime before
// the appointment. Appointments closer than the lead time get no reminder.
func (s *DefaultNotificationService) ScheduleBookingReminder(booking *models.Booking, businessName string) error {
	if s.Scheduler == nil {
		return nil
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.StartTime, time.Local)
	if err != nil {
		return fmt.Errorf("ScheduleBookingReminder: bad booking time: %w", err)
	}
	fireAt := start.Add(-ReminderLeadTime)
	if fireAt.Before(time.Now()) {
		return nil
	}
	payload := models.ReminderPayload{
		BookingID: booking.ID,
		UserID:    booking.ClientID,
		Title:     "Appointment tomorrow",
		Body:      fmt.Sprintf("Reminder: %s on %s at %s.", businessName, booking.Date, booking.StartTime),
		FireDate:  fireAt.Format(time.RFC3339),
	}
	return s.Scheduler.Schedule(payload, fireAt)
}
