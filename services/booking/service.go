package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "imara/database/repository/booking"
	businessRepo "imara/database/repository/business"
	"imara/models"
	"imara/services/chat"
	"imara/services/notification"
	"imara/services/schedule"
	"imara/utils"
)

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	BusinessRepo businessRepo.BusinessRepository
	Chat         chat.ChatService
	Notifier     notification.NotificationService
	Now          func() time.Time // injectable for same-day slot filtering
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// DaySlots generates the bookable slots for a business on the given day.
// Break slots and slots overlapping blocking bookings come back with
// Available=false; on the current day, past slots are omitted.
func (s *DefaultBookingService) DaySlots(ctx context.Context, businessID, date string, slotDuration int) ([]models.TimeSlot, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: fmt.Sprintf("want YYYY-MM-DD, got %q", date)}
	}
	if slotDuration == 0 {
		slotDuration = schedule.DefaultSlotDuration
	}

	biz, err := s.BusinessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business %s: %w", businessID, err)
	}
	if biz == nil {
		return nil, &ValidationError{Field: "businessId", Reason: fmt.Sprintf("unknown business %q", businessID)}
	}

	hours, ok := biz.Schedule.Day(day)
	if !ok || !hours.IsOpen {
		return []models.TimeSlot{}, nil
	}

	slots, err := schedule.GenerateSlots(hours, day, slotDuration, biz.Break, s.now())
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return []models.TimeSlot{}, nil
	}

	existing, err := s.Repo.GetDayBookings(ctx, businessID, date)
	if err != nil {
		// Fail closed: without the day's bookings every slot must read as
		// unavailable rather than bookable.
		utils.GetLogger().Warn("day bookings fetch failed, greying out all slots",
			zap.String("businessId", businessID), zap.String("date", date), zap.Error(err))
		for i := range slots {
			slots[i].Available = false
		}
		return slots, nil
	}
	return schedule.MarkConflicts(slots, existing, date, slotDuration), nil
}

// CheckAvailability runs the advisory conflict check over the business's
// bookings for the day. Errors from the fetch report unavailable.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, businessID, date, startTime string, duration int) (bool, error) {
	start, _, err := schedule.ProposedInterval(startTime, duration)
	if err != nil {
		return false, &ValidationError{Field: "interval", Reason: err.Error()}
	}
	existing, err := s.Repo.GetDayBookings(ctx, businessID, date)
	if err != nil {
		return false, fmt.Errorf("availability check failed: %w", err)
	}
	return !schedule.HasConflict(existing, date, start, duration), nil
}

// Create validates the proposal, runs the advisory availability check and
// hands the booking to the repository's transactional conditional insert.
// New bookings start as pending.
func (s *DefaultBookingService) Create(ctx context.Context, clientID string, input models.BookingInput) (*models.Booking, error) {
	if clientID == "" {
		return nil, &ValidationError{Field: "clientId", Reason: "required"}
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, &ValidationError{Field: "date", Reason: fmt.Sprintf("want YYYY-MM-DD, got %q", input.Date)}
	}
	start, end, err := schedule.ProposedInterval(input.StartTime, input.Duration)
	if err != nil {
		return nil, &ValidationError{Field: "interval", Reason: err.Error()}
	}

	available, err := s.CheckAvailability(ctx, input.BusinessID, input.Date, input.StartTime, input.Duration)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrSlotTaken
	}

	biz, err := s.BusinessRepo.GetByID(ctx, input.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business %s: %w", input.BusinessID, err)
	}
	if biz == nil {
		return nil, &ValidationError{Field: "businessId", Reason: fmt.Sprintf("unknown business %q", input.BusinessID)}
	}

	price := input.Price
	if svc, ok := biz.ServiceByID(input.ServiceID); ok {
		price = svc.Price
	}

	now := s.now()
	b := &models.Booking{
		ID:         uuid.New().String(),
		BusinessID: input.BusinessID,
		ClientID:   clientID,
		ServiceID:  input.ServiceID,
		Date:       input.Date,
		StartTime:  start.Clock(),
		EndTime:    end.Clock(),
		Duration:   input.Duration,
		Start:      int(start),
		End:        int(end),
		Status:     models.BookingPending,
		Notes:      input.Notes,
		Price:      price,
		TotalPrice: price,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if biz.RequiresDeposit && biz.DepositPercentage > 0 {
		b.DepositRequired = true
		b.DepositPercentage = biz.DepositPercentage
		b.DepositAmount = price * float64(biz.DepositPercentage) / 100
	}

	// The repo re-validates non-overlap inside a transaction; the check
	// above is advisory UX only.
	if err := s.Repo.CreateIfAvailable(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("error creating booking: %w", err)
	}

	if err := s.BusinessRepo.IncrementBookingCount(ctx, input.BusinessID); err != nil {
		utils.GetLogger().Warn("failed to bump booking count", zap.String("businessId", input.BusinessID), zap.Error(err))
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("businessId", b.BusinessID),
		zap.String("date", b.Date),
		zap.String("start", b.StartTime))
	return b, nil
}

// Confirm moves a pending booking to confirmed, opens its chat
// conversation, pushes a confirmation and schedules the 24h reminder.
func (s *DefaultBookingService) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if b.Status != models.BookingPending {
		return nil, &TransitionError{From: string(b.Status), To: string(models.BookingConfirmed)}
	}
	if err := s.Repo.UpdateStatus(ctx, bookingID, models.BookingConfirmed); err != nil {
		return nil, err
	}
	b.Status = models.BookingConfirmed

	businessName := b.BusinessID
	if biz, err := s.BusinessRepo.GetByID(ctx, b.BusinessID); err == nil && biz != nil {
		businessName = biz.Name
	}

	logger := utils.GetLogger()
	if s.Chat != nil {
		if _, err := s.Chat.Start(ctx, b); err != nil {
			logger.Warn("failed to open conversation for booking", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.NotifyBookingConfirmed(ctx, b, businessName); err != nil {
			logger.Warn("confirmation push failed", zap.String("bookingId", b.ID), zap.Error(err))
		}
		if err := s.Notifier.ScheduleBookingReminder(b, businessName); err != nil {
			logger.Warn("reminder scheduling failed", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	return b, nil
}

// Cancel marks the booking cancelled with a reason and the cancelling
// party ("client" or "professional"), then notifies the other side.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, reason, cancelledBy string) error {
	if cancelledBy != "client" && cancelledBy != "professional" {
		return &ValidationError{Field: "cancelledBy", Reason: "must be client or professional"}
	}
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if b.Status == models.BookingCompleted || b.Status == models.BookingCancelled {
		return &TransitionError{From: string(b.Status), To: string(models.BookingCancelled)}
	}
	if err := s.Repo.Cancel(ctx, bookingID, reason, cancelledBy); err != nil {
		return err
	}

	if s.Notifier != nil {
		b.Status = models.BookingCancelled
		b.CancellationReason = reason

		// The push goes to whichever side did not cancel.
		recipientID := b.ClientID
		if cancelledBy == "client" {
			biz, err := s.BusinessRepo.GetByID(ctx, b.BusinessID)
			if err != nil || biz == nil {
				utils.GetLogger().Warn("cancellation push skipped, business lookup failed",
					zap.String("bookingId", b.ID), zap.Error(err))
				return nil
			}
			recipientID = biz.OwnerID
		}
		if err := s.Notifier.NotifyBookingCancelled(ctx, b, recipientID); err != nil {
			utils.GetLogger().Warn("cancellation push failed", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultBookingService) Complete(ctx context.Context, bookingID string) error {
	return s.transition(ctx, bookingID, models.BookingConfirmed, models.BookingCompleted)
}

func (s *DefaultBookingService) MarkNoShow(ctx context.Context, bookingID string) error {
	return s.transition(ctx, bookingID, models.BookingConfirmed, models.BookingNoShow)
}

func (s *DefaultBookingService) transition(ctx context.Context, bookingID string, from, to models.BookingStatus) error {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if b.Status != from {
		return &TransitionError{From: string(b.Status), To: string(to)}
	}
	return s.Repo.UpdateStatus(ctx, bookingID, to)
}

func (s *DefaultBookingService) ClientBookings(ctx context.Context, clientID string, status models.BookingStatus) ([]models.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}
	return s.Repo.GetByClient(ctx, clientID, status)
}

func (s *DefaultBookingService) BusinessBookings(ctx context.Context, businessID string) ([]models.Booking, error) {
	return s.Repo.GetByBusiness(ctx, businessID)
}
