package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	bookingRepo "imara/database/repository/booking"
	"imara/models"
)

// fixedMonday is an arbitrary Monday used by the slot tests.
const fixedMonday = "2025-03-10"

type fakeBookingRepo struct {
	bookings  map[string]*models.Booking
	dayErr    error
	createErr error

	created     *models.Booking
	statusSets  map[string]models.BookingStatus
	cancelCalls int
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{
		bookings:   make(map[string]*models.Booking),
		statusSets: make(map[string]models.BookingStatus),
	}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByClient(ctx context.Context, clientID string, status models.BookingStatus) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ClientID != clientID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByBusiness(ctx context.Context, businessID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.BusinessID == businessID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetDayBookings(ctx context.Context, businessID, date string) ([]models.Booking, error) {
	if r.dayErr != nil {
		return nil, r.dayErr
	}
	var out []models.Booking
	for _, b := range r.bookings {
		if b.BusinessID == businessID && b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CreateIfAvailable(ctx context.Context, b *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = b
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s not found", id)
	}
	b.Status = status
	r.statusSets[id] = status
	return nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id, reason, cancelledBy string) error {
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s not found", id)
	}
	b.Status = models.BookingCancelled
	b.CancellationReason = reason
	b.CancelledBy = cancelledBy
	r.cancelCalls++
	return nil
}

type fakeBusinessRepo struct {
	business   *models.Business
	getErr     error
	increments int
}

func (r *fakeBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.business, nil
}

func (r *fakeBusinessRepo) ListActive(ctx context.Context, tag, city string) ([]models.Business, error) {
	return []models.Business{*r.business}, nil
}

func (r *fakeBusinessRepo) AddGalleryImage(ctx context.Context, id string, img models.GalleryImage) error {
	return nil
}

func (r *fakeBusinessRepo) IncrementBookingCount(ctx context.Context, id string) error {
	r.increments++
	return nil
}

type fakeNotifier struct {
	confirmed []string
	cancelled []string
	reminders []string
}

func (n *fakeNotifier) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	return nil
}

func (n *fakeNotifier) NotifyBookingConfirmed(ctx context.Context, b *models.Booking, businessName string) error {
	n.confirmed = append(n.confirmed, b.ID)
	return nil
}

func (n *fakeNotifier) NotifyBookingCancelled(ctx context.Context, b *models.Booking, recipientID string) error {
	n.cancelled = append(n.cancelled, recipientID)
	return nil
}

func (n *fakeNotifier) NotifyNewMessage(ctx context.Context, conv *models.Conversation, msg *models.Message) error {
	return nil
}

func (n *fakeNotifier) ScheduleBookingReminder(b *models.Booking, businessName string) error {
	n.reminders = append(n.reminders, b.ID)
	return nil
}

type fakeChat struct {
	started []string
}

func (c *fakeChat) Start(ctx context.Context, b *models.Booking) (*models.Conversation, error) {
	c.started = append(c.started, b.ID)
	return &models.Conversation{ID: "conv-" + b.ID, BookingID: b.ID}, nil
}

func (c *fakeChat) Send(ctx context.Context, conversationID, senderID, text string, attachments []models.MessageAttachment) (*models.Message, error) {
	return nil, nil
}

func (c *fakeChat) Messages(ctx context.Context, conversationID string, limit int64) ([]models.Message, error) {
	return nil, nil
}

func (c *fakeChat) MarkRead(ctx context.Context, conversationID, userID string) error { return nil }

func (c *fakeChat) ListFor(ctx context.Context, userID string) ([]models.Conversation, error) {
	return nil, nil
}

func (c *fakeChat) Search(ctx context.Context, userID, query string) ([]models.Conversation, error) {
	return nil, nil
}

func (c *fakeChat) Archive(ctx context.Context, conversationID string) error { return nil }

func (c *fakeChat) UnreadTotal(ctx context.Context, userID string) (int, error) { return 0, nil }

func testBusiness() *models.Business {
	return &models.Business{
		ID:      "biz1",
		OwnerID: "pro1",
		Name:    "Fade Factory",
		Services: []models.Service{
			{ID: "svc1", Name: "Men's cut", Duration: 30, Price: 40},
		},
		Schedule: models.WeekSchedule{
			"monday": {Open: "09:00", Close: "12:00", IsOpen: true},
			"sunday": {IsOpen: false},
		},
		IsActive: true,
	}
}

func newService(repo *fakeBookingRepo, biz *fakeBusinessRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:         repo,
		BusinessRepo: biz,
		Now: func() time.Time {
			return time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local)
		},
	}
}

func storedBooking(id, date, start string, durMin int, status models.BookingStatus) *models.Booking {
	s := mustMinutes(start)
	return &models.Booking{
		ID:         id,
		BusinessID: "biz1",
		ClientID:   "client1",
		Date:       date,
		StartTime:  start,
		Duration:   durMin,
		Start:      s,
		End:        s + durMin,
		Status:     status,
	}
}

func mustMinutes(clock string) int {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		panic(err)
	}
	return h*60 + m
}

func TestDaySlotsMarksBookedSlots(t *testing.T) {
	repo := newFakeBookingRepo(storedBooking("b1", fixedMonday, "10:00", 30, models.BookingConfirmed))
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})

	slots, err := svc.DaySlots(context.Background(), "biz1", fixedMonday, 30)
	if err != nil {
		t.Fatalf("DaySlots: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots for 09:00-12:00/30, got %d", len(slots))
	}
	for _, s := range slots {
		wantAvailable := s.Time != "10:00"
		if s.Available != wantAvailable {
			t.Errorf("slot %s: available = %v, want %v", s.Time, s.Available, wantAvailable)
		}
	}
}

func TestDaySlotsFailClosedOnFetchError(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.dayErr = errors.New("mongo down")
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})

	slots, err := svc.DaySlots(context.Background(), "biz1", fixedMonday, 30)
	if err != nil {
		t.Fatalf("DaySlots should not fail when bookings fetch fails, got %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots to still be generated")
	}
	for _, s := range slots {
		if s.Available {
			t.Errorf("slot %s should read unavailable when bookings cannot be loaded", s.Time)
		}
	}
}

func TestDaySlotsClosedDay(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakeBusinessRepo{business: testBusiness()})

	slots, err := svc.DaySlots(context.Background(), "biz1", "2025-03-09", 30) // sunday
	if err != nil {
		t.Fatalf("DaySlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a closed day, got %d", len(slots))
	}
}

func TestDaySlotsRejectsBadDate(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakeBusinessRepo{business: testBusiness()})

	_, err := svc.DaySlots(context.Background(), "biz1", "10-03-2025", 30)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for malformed date, got %v", err)
	}
}

func TestCheckAvailabilityFailClosed(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.dayErr = errors.New("mongo down")
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})

	available, err := svc.CheckAvailability(context.Background(), "biz1", fixedMonday, "10:00", 30)
	if err == nil {
		t.Fatal("expected an error when the bookings fetch fails")
	}
	if available {
		t.Fatal("a failed fetch must report unavailable")
	}
}

func TestCreateStartsPendingWithDeposit(t *testing.T) {
	biz := testBusiness()
	biz.RequiresDeposit = true
	biz.DepositPercentage = 20
	repo := newFakeBookingRepo()
	bizRepo := &fakeBusinessRepo{business: biz}
	svc := newService(repo, bizRepo)

	b, err := svc.Create(context.Background(), "client1", models.BookingInput{
		BusinessID: "biz1",
		ServiceID:  "svc1",
		Date:       fixedMonday,
		StartTime:  "10:00",
		Duration:   30,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Status != models.BookingPending {
		t.Errorf("new booking status = %s, want pending", b.Status)
	}
	if b.Start != 600 || b.End != 630 {
		t.Errorf("minute interval = [%d, %d), want [600, 630)", b.Start, b.End)
	}
	if b.EndTime != "10:30" {
		t.Errorf("end time = %s, want 10:30", b.EndTime)
	}
	if b.Price != 40 {
		t.Errorf("price = %v, want the service's price 40", b.Price)
	}
	if !b.DepositRequired || b.DepositAmount != 8 {
		t.Errorf("deposit = (%v, %v), want (true, 8)", b.DepositRequired, b.DepositAmount)
	}
	if repo.created == nil {
		t.Fatal("booking was not handed to the repository")
	}
	if bizRepo.increments != 1 {
		t.Errorf("booking count increments = %d, want 1", bizRepo.increments)
	}
}

func TestCreateConflictWithPendingBooking(t *testing.T) {
	repo := newFakeBookingRepo(storedBooking("b1", fixedMonday, "10:00", 30, models.BookingPending))
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})

	_, err := svc.Create(context.Background(), "client2", models.BookingInput{
		BusinessID: "biz1",
		Date:       fixedMonday,
		StartTime:  "10:15",
		Duration:   30,
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken against a pending booking, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("conflicting booking must not reach the repository")
	}
}

func TestCreateIgnoresCancelledBooking(t *testing.T) {
	repo := newFakeBookingRepo(storedBooking("b1", fixedMonday, "10:00", 30, models.BookingCancelled))
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})

	b, err := svc.Create(context.Background(), "client2", models.BookingInput{
		BusinessID: "biz1",
		Date:       fixedMonday,
		StartTime:  "10:00",
		Duration:   30,
	})
	if err != nil {
		t.Fatalf("cancelled bookings must not block: %v", err)
	}
	if b.Status != models.BookingPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
}

func TestCreateUnknownBusiness(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakeBusinessRepo{})

	_, err := svc.Create(context.Background(), "client1", models.BookingInput{
		BusinessID: "ghost",
		Date:       fixedMonday,
		StartTime:  "10:00",
		Duration:   30,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown business, got %v", err)
	}
}

func TestCreateRaceLostAtCommit(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.createErr = bookingRepo.ErrSlotTaken
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})

	_, err := svc.Create(context.Background(), "client1", models.BookingInput{
		BusinessID: "biz1",
		Date:       fixedMonday,
		StartTime:  "10:00",
		Duration:   30,
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("transactional conflict must surface as ErrSlotTaken, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakeBusinessRepo{business: testBusiness()})

	cases := []struct {
		name  string
		input models.BookingInput
	}{
		{"bad date", models.BookingInput{BusinessID: "biz1", Date: "March 10", StartTime: "10:00", Duration: 30}},
		{"bad time", models.BookingInput{BusinessID: "biz1", Date: fixedMonday, StartTime: "25:99", Duration: 30}},
		{"zero duration", models.BookingInput{BusinessID: "biz1", Date: fixedMonday, StartTime: "10:00", Duration: 0}},
		{"negative duration", models.BookingInput{BusinessID: "biz1", Date: fixedMonday, StartTime: "10:00", Duration: -15}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "client1", tc.input)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestConfirmOpensChatAndSchedulesReminder(t *testing.T) {
	repo := newFakeBookingRepo(storedBooking("b1", fixedMonday, "10:00", 30, models.BookingPending))
	notifier := &fakeNotifier{}
	chatSvc := &fakeChat{}
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})
	svc.Chat = chatSvc
	svc.Notifier = notifier

	b, err := svc.Confirm(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if b.Status != models.BookingConfirmed {
		t.Errorf("status = %s, want confirmed", b.Status)
	}
	if len(chatSvc.started) != 1 || chatSvc.started[0] != "b1" {
		t.Errorf("conversation not opened for booking, started = %v", chatSvc.started)
	}
	if len(notifier.confirmed) != 1 {
		t.Errorf("confirmation push not sent, got %v", notifier.confirmed)
	}
	if len(notifier.reminders) != 1 {
		t.Errorf("reminder not scheduled, got %v", notifier.reminders)
	}
}

func TestConfirmRejectsNonPending(t *testing.T) {
	for _, status := range []models.BookingStatus{models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted} {
		repo := newFakeBookingRepo(storedBooking("b1", fixedMonday, "10:00", 30, status))
		svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})

		_, err := svc.Confirm(context.Background(), "b1")
		var tErr *TransitionError
		if !errors.As(err, &tErr) {
			t.Errorf("confirm from %s: expected TransitionError, got %v", status, err)
		}
	}
}

func TestCancelValidatesActor(t *testing.T) {
	repo := newFakeBookingRepo(storedBooking("b1", fixedMonday, "10:00", 30, models.BookingConfirmed))
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})

	err := svc.Cancel(context.Background(), "b1", "sick", "somebody")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown actor, got %v", err)
	}
}

func TestCancelFromTerminalStatus(t *testing.T) {
	for _, status := range []models.BookingStatus{models.BookingCompleted, models.BookingCancelled} {
		repo := newFakeBookingRepo(storedBooking("b1", fixedMonday, "10:00", 30, status))
		svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})

		err := svc.Cancel(context.Background(), "b1", "whatever", "client")
		var tErr *TransitionError
		if !errors.As(err, &tErr) {
			t.Errorf("cancel from %s: expected TransitionError, got %v", status, err)
		}
	}
}

func TestCancelByProfessionalNotifiesClient(t *testing.T) {
	repo := newFakeBookingRepo(storedBooking("b1", fixedMonday, "10:00", 30, models.BookingConfirmed))
	notifier := &fakeNotifier{}
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})
	svc.Notifier = notifier

	if err := svc.Cancel(context.Background(), "b1", "emergency", "professional"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if repo.cancelCalls != 1 {
		t.Fatalf("repo cancel calls = %d, want 1", repo.cancelCalls)
	}
	if len(notifier.cancelled) != 1 || notifier.cancelled[0] != "client1" {
		t.Errorf("client not notified of cancellation, got %v", notifier.cancelled)
	}
}

func TestCancelByClientNotifiesProfessional(t *testing.T) {
	repo := newFakeBookingRepo(storedBooking("b1", fixedMonday, "10:00", 30, models.BookingPending))
	notifier := &fakeNotifier{}
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})
	svc.Notifier = notifier

	if err := svc.Cancel(context.Background(), "b1", "changed plans", "client"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(notifier.cancelled) != 1 || notifier.cancelled[0] != "pro1" {
		t.Errorf("professional not notified of client cancellation, got %v", notifier.cancelled)
	}
}

func TestCompleteAndNoShowRequireConfirmed(t *testing.T) {
	repo := newFakeBookingRepo(storedBooking("b1", fixedMonday, "10:00", 30, models.BookingConfirmed))
	svc := newService(repo, &fakeBusinessRepo{business: testBusiness()})

	if err := svc.Complete(context.Background(), "b1"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got := repo.statusSets["b1"]; got != models.BookingCompleted {
		t.Errorf("status = %s, want completed", got)
	}

	// Completed bookings cannot flip to no-show.
	err := svc.MarkNoShow(context.Background(), "b1")
	var tErr *TransitionError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}

func TestClientBookingsRejectsUnknownStatusFilter(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakeBusinessRepo{business: testBusiness()})

	_, err := svc.ClientBookings(context.Background(), "client1", models.BookingStatus("archived"))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
