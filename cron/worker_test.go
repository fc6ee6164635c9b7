package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/hibiken/asynq"

	"imara/models"
	"imara/services/tasks"
)

type fakeBookingStore struct {
	bookings map[string]*models.Booking
}

func (r *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	return b, nil
}

func (r *fakeBookingStore) GetByClient(ctx context.Context, clientID string, status models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingStore) GetByBusiness(ctx context.Context, businessID string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingStore) GetDayBookings(ctx context.Context, businessID, date string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingStore) CreateIfAvailable(ctx context.Context, booking *models.Booking) error {
	return nil
}

func (r *fakeBookingStore) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	return nil
}

func (r *fakeBookingStore) Cancel(ctx context.Context, id, reason, cancelledBy string) error {
	return nil
}

type recordingNotifier struct {
	pushes []string
}

func (n *recordingNotifier) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	n.pushes = append(n.pushes, userID)
	return nil
}

func (n *recordingNotifier) NotifyBookingConfirmed(ctx context.Context, b *models.Booking, businessName string) error {
	return nil
}

func (n *recordingNotifier) NotifyBookingCancelled(ctx context.Context, b *models.Booking, recipientID string) error {
	return nil
}

func (n *recordingNotifier) NotifyNewMessage(ctx context.Context, conv *models.Conversation, msg *models.Message) error {
	return nil
}

func (n *recordingNotifier) ScheduleBookingReminder(b *models.Booking, businessName string) error {
	return nil
}

func reminderTask(t *testing.T, bookingID string) *asynq.Task {
	t.Helper()
	payload := models.ReminderPayload{
		BookingID: bookingID,
		UserID:    "client1",
		Title:     "Appointment tomorrow",
		Body:      "See you at 10:00",
	}
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return asynq.NewTask(tasks.TypeSendReminder, b)
}

func TestReminderSentForConfirmedBooking(t *testing.T) {
	store := &fakeBookingStore{bookings: map[string]*models.Booking{
		"b1": {ID: "b1", ClientID: "client1", Status: models.BookingConfirmed},
	}}
	notifier := &recordingNotifier{}
	handler := handleReminderTask(notifier, store)

	if err := handler(context.Background(), reminderTask(t, "b1")); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(notifier.pushes) != 1 || notifier.pushes[0] != "client1" {
		t.Errorf("pushes = %v, want [client1]", notifier.pushes)
	}
}

func TestReminderDroppedForCancelledBooking(t *testing.T) {
	store := &fakeBookingStore{bookings: map[string]*models.Booking{
		"b1": {ID: "b1", ClientID: "client1", Status: models.BookingCancelled},
	}}
	notifier := &recordingNotifier{}
	handler := handleReminderTask(notifier, store)

	if err := handler(context.Background(), reminderTask(t, "b1")); err != nil {
		t.Fatalf("a stale reminder must be dropped, not retried: %v", err)
	}
	if len(notifier.pushes) != 0 {
		t.Errorf("cancelled booking still pushed: %v", notifier.pushes)
	}
}

func TestReminderRetriesWhenBookingLookupFails(t *testing.T) {
	store := &fakeBookingStore{bookings: map[string]*models.Booking{}}
	notifier := &recordingNotifier{}
	handler := handleReminderTask(notifier, store)

	if err := handler(context.Background(), reminderTask(t, "missing")); err == nil {
		t.Fatal("expected an error so asynq retries the task")
	}
	if len(notifier.pushes) != 0 {
		t.Errorf("push sent despite lookup failure: %v", notifier.pushes)
	}
}
