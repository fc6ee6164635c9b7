package chat

import (
	"context"

	"imara/models"
)

// ChatService owns conversations, messages and the per-side unread
// counters backing the chat tab badge.
type ChatService interface {
	// Start opens the conversation for a booking, or returns the existing
	// one (one conversation per booking).
	Start(ctx context.Context, booking *models.Booking) (*models.Conversation, error)

	Send(ctx context.Context, conversationID, senderID, text string, attachments []models.MessageAttachment) (*models.Message, error)
	Messages(ctx context.Context, conversationID string, limit int64) ([]models.Message, error)
	MarkRead(ctx context.Context, conversationID, userID string) error

	ListFor(ctx context.Context, userID string) ([]models.Conversation, error)
	Search(ctx context.Context, userID, query string) ([]models.Conversation, error)
	Archive(ctx context.Context, conversationID string) error
	UnreadTotal(ctx context.Context, userID string) (int, error)
}
