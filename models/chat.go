package models

import "time"

// MessageAttachment is an uploaded file referenced from a chat message.
type MessageAttachment struct {
	ID         string    `bson:"id" json:"id"`
	Type       string    `bson:"type" json:"type"` // "image" or "document"
	URL        string    `bson:"url" json:"url"`
	FileName   string    `bson:"fileName" json:"fileName"`
	Size       int64     `bson:"size" json:"size"` // bytes
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

type Message struct {
	ID             string              `bson:"id" json:"id"`
	ConversationID string              `bson:"conversationId" json:"conversationId"`
	SenderID       string              `bson:"senderId" json:"senderId"`
	SenderName     string              `bson:"senderName" json:"senderName"`
	SenderAvatar   string              `bson:"senderAvatar,omitempty" json:"senderAvatar,omitempty"`
	Text           string              `bson:"text" json:"text"`
	Attachments    []MessageAttachment `bson:"attachments,omitempty" json:"attachments,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	IsRead         bool                `bson:"isRead" json:"isRead"`
	ReadAt         *time.Time          `bson:"readAt,omitempty" json:"readAt,omitempty"`
}

// Conversation ties a client and a professional together around one
// booking. Names and avatars are denormalized for list rendering; unread
// counters are kept per side so each participant has their own badge.
type Conversation struct {
	ID             string `bson:"id" json:"id"`
	BookingID      string `bson:"bookingId" json:"bookingId"`
	ClientID       string `bson:"clientId" json:"clientId"`
	ProfessionalID string `bson:"professionalId" json:"professionalId"`

	ClientName         string `bson:"clientName" json:"clientName"`
	ProfessionalName   string `bson:"professionalName" json:"professionalName"`
	ClientAvatar       string `bson:"clientAvatar,omitempty" json:"clientAvatar,omitempty"`
	ProfessionalAvatar string `bson:"professionalAvatar,omitempty" json:"professionalAvatar,omitempty"`
	BusinessName       string `bson:"businessName" json:"businessName"`
	ServiceBooked      string `bson:"serviceBooked,omitempty" json:"serviceBooked,omitempty"`
	BookingDate        string `bson:"bookingDate" json:"bookingDate"` // "YYYY-MM-DD"

	LastMessage     string    `bson:"lastMessage" json:"lastMessage"`
	LastMessageTime time.Time `bson:"lastMessageTime" json:"lastMessageTime"`

	UnreadCountClient int `bson:"unreadCountClient" json:"unreadCountClient"`
	UnreadCountPro    int `bson:"unreadCountPro" json:"unreadCountPro"`

	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	IsActive   bool      `bson:"isActive" json:"isActive"`
	IsArchived bool      `bson:"isArchived" json:"isArchived"`
}

// HasParticipant reports whether userID is one of the two sides.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.ClientID == userID || c.ProfessionalID == userID
}

// UnreadFor returns the unread counter belonging to userID's side.
func (c *Conversation) UnreadFor(userID string) int {
	if c.ClientID == userID {
		return c.UnreadCountClient
	}
	return c.UnreadCountPro
}
