package notification

import (
	"context"

	"imara/models"
)

// NotificationService defines methods for sending FCM pushes and
// scheduling booking reminders.
type NotificationService interface {
	SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyBookingConfirmed(ctx context.Context, booking *models.Booking, businessName string) error
	NotifyBookingCancelled(ctx context.Context, booking *models.Booking, recipientID string) error
	NotifyNewMessage(ctx context.Context, conv *models.Conversation, msg *models.Message) error
	// ScheduleBookingReminder enqueues a push for 24h before the
	// appointment start.
	ScheduleBookingReminder(booking *models.Booking, businessName string) error
}
