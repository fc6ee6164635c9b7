package chatRepo

import (
	"context"

	"imara/models"
)

// ChatRepository is the persistence port for conversations and messages.
type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	GetConversationByBooking(ctx context.Context, bookingID string) (*models.Conversation, error)
	// GetConversationsFor returns unarchived conversations where userID is
	// either participant, most recent activity first.
	GetConversationsFor(ctx context.Context, userID string) ([]models.Conversation, error)

	InsertMessage(ctx context.Context, msg *models.Message) error
	GetMessages(ctx context.Context, conversationID string, limit int64) ([]models.Message, error)

	// TouchConversation updates the last-message preview and increments the
	// unread counter of the side that did not send.
	TouchConversation(ctx context.Context, conversationID, lastMessage string, incrementClient bool) error
	ResetUnread(ctx context.Context, conversationID string, clientSide bool) error
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) error

	SetArchived(ctx context.Context, conversationID string, archived bool) error
}
