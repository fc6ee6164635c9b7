package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	businessRepo "imara/database/repository/business"
	chatRepo "imara/database/repository/chat"
	userRepo "imara/database/repository/user"
	"imara/models"
	"imara/services/notification"
	"imara/utils"
)

// ErrEmptyMessage is returned for a blank message with no attachments.
var ErrEmptyMessage = errors.New("message has no text or attachments")

// ErrNotParticipant is returned when a user acts on a conversation they
// are not part of.
var ErrNotParticipant = errors.New("user is not a participant of this conversation")

const attachmentPreview = "Sent an attachment"

// DefaultChatService is the production implementation.
type DefaultChatService struct {
	Repo       chatRepo.ChatRepository
	Users      userRepo.UserRepository
	Businesses businessRepo.BusinessRepository
	Notifier   notification.NotificationService
}

// Start opens the conversation for a booking, denormalizing participant
// and business names for list rendering. Idempotent per booking.
func (s *DefaultChatService) Start(ctx context.Context, booking *models.Booking) (*models.Conversation, error) {
	existing, err := s.Repo.GetConversationByBooking(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up conversation for booking %s: %w", booking.ID, err)
	}
	if existing != nil {
		return existing, nil
	}

	biz, err := s.Businesses.GetByID(ctx, booking.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business %s: %w", booking.BusinessID, err)
	}
	if biz == nil {
		return nil, fmt.Errorf("business %s not found", booking.BusinessID)
	}

	clientName := booking.ClientID
	clientAvatar := ""
	if client, err := s.Users.GetByID(ctx, booking.ClientID); err == nil {
		clientName = client.DisplayName()
		clientAvatar = client.Avatar
	}

	serviceBooked := ""
	if svc, ok := biz.ServiceByID(booking.ServiceID); ok {
		serviceBooked = svc.Name
	}

	conv := &models.Conversation{
		ID:                 uuid.New().String(),
		BookingID:          booking.ID,
		ClientID:           booking.ClientID,
		ProfessionalID:     biz.OwnerID,
		ClientName:         clientName,
		ProfessionalName:   biz.Name,
		ClientAvatar:       clientAvatar,
		ProfessionalAvatar: biz.Logo,
		BusinessName:       biz.Name,
		ServiceBooked:      serviceBooked,
		BookingDate:        booking.Date,
		LastMessage:        "Conversation created",
		LastMessageTime:    time.Now(),
		CreatedAt:          time.Now(),
		IsActive:           true,
	}
	if err := s.Repo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	utils.GetLogger().Info("conversation opened",
		zap.String("conversationId", conv.ID),
		zap.String("bookingId", booking.ID))
	return conv, nil
}

// Send inserts the message and bumps the unread counter of the receiving
// side only. Blank messages without attachments are rejected.
func (s *DefaultChatService) Send(ctx context.Context, conversationID, senderID, text string, attachments []models.MessageAttachment) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && len(attachments) == 0 {
		return nil, ErrEmptyMessage
	}

	conv, err := s.Repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
	}
	if !conv.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	senderName := conv.ProfessionalName
	senderAvatar := conv.ProfessionalAvatar
	if senderID == conv.ClientID {
		senderName = conv.ClientName
		senderAvatar = conv.ClientAvatar
	}

	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderName:     senderName,
		SenderAvatar:   senderAvatar,
		Text:           text,
		Attachments:    attachments,
		CreatedAt:      time.Now(),
	}
	if err := s.Repo.InsertMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}

	preview := text
	if preview == "" {
		preview = attachmentPreview
	}
	// The sender's own counter stays put; the other side gets +1.
	incrementClient := senderID != conv.ClientID
	if err := s.Repo.TouchConversation(ctx, conversationID, preview, incrementClient); err != nil {
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyNewMessage(ctx, conv, msg); err != nil {
			utils.GetLogger().Debug("message push failed", zap.String("conversationId", conversationID), zap.Error(err))
		}
	}
	return msg, nil
}

func (s *DefaultChatService) Messages(ctx context.Context, conversationID string, limit int64) ([]models.Message, error) {
	return s.Repo.GetMessages(ctx, conversationID, limit)
}

// MarkRead zeroes the reader's unread counter and flags the other side's
// messages as read.
func (s *DefaultChatService) MarkRead(ctx context.Context, conversationID, userID string) error {
	conv, err := s.Repo.GetConversation(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
	}
	if !conv.HasParticipant(userID) {
		return ErrNotParticipant
	}
	if err := s.Repo.ResetUnread(ctx, conversationID, userID == conv.ClientID); err != nil {
		return err
	}
	return s.Repo.MarkMessagesRead(ctx, conversationID, userID)
}

func (s *DefaultChatService) ListFor(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.Repo.GetConversationsFor(ctx, userID)
}

// Search filters the user's conversations by participant or business
// name, case-insensitively.
func (s *DefaultChatService) Search(ctx context.Context, userID, query string) ([]models.Conversation, error) {
	convs, err := s.Repo.GetConversationsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return convs, nil
	}
	var matched []models.Conversation
	for _, c := range convs {
		if strings.Contains(strings.ToLower(c.ProfessionalName), q) ||
			strings.Contains(strings.ToLower(c.ClientName), q) ||
			strings.Contains(strings.ToLower(c.BusinessName), q) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (s *DefaultChatService) Archive(ctx context.Context, conversationID string) error {
	return s.Repo.SetArchived(ctx, conversationID, true)
}

// UnreadTotal sums the user's side of every conversation counter.
func (s *DefaultChatService) UnreadTotal(ctx context.Context, userID string) (int, error) {
	convs, err := s.Repo.GetConversationsFor(ctx, userID)
	if err != nil {
		return 0, err
	}
	total := 0
	for i := range convs {
		total += convs[i].UnreadFor(userID)
	}
	return total, nil
}
