package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"imara/middleware"
	"imara/models"
	chatSvc "imara/services/chat"
	"imara/utils"
)

// ListConversations returns the caller's conversations, newest activity
// first.
func (hb *HandlerBundle) ListConversations(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)
	conversations, err := hb.Chat.ListFor(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch conversations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// SearchConversations filters the caller's conversations by participant
// or business name.
func (hb *HandlerBundle) SearchConversations(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)
	conversations, err := hb.Chat.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to search conversations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// GetMessages returns a conversation's messages in chronological order.
func (hb *HandlerBundle) GetMessages(c *gin.Context) {
	var limit int64
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.ParseInt(l, 10, 64)
		if err != nil || parsed < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid limit", "limit must be a non-negative number")
			return
		}
		limit = parsed
	}

	messages, err := hb.Chat.Messages(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch messages", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage posts a message into a conversation.
func (hb *HandlerBundle) SendMessage(c *gin.Context) {
	var input struct {
		Text        string                     `json:"text"`
		Attachments []models.MessageAttachment `json:"attachments"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	senderID := middleware.AuthenticatedUserID(c)
	msg, err := hb.Chat.Send(c.Request.Context(), c.Param("id"), senderID, input.Text, input.Attachments)
	if err != nil {
		switch {
		case errors.Is(err, chatSvc.ErrEmptyMessage):
			utils.JSONError(c, http.StatusBadRequest, "empty message", "message needs text or an attachment")
		case errors.Is(err, chatSvc.ErrNotParticipant):
			utils.JSONError(c, http.StatusForbidden, "not a participant", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to send message", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// MarkConversationRead zeroes the caller's unread counter and marks
// their unread messages read.
func (hb *HandlerBundle) MarkConversationRead(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)
	if err := hb.Chat.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, chatSvc.ErrNotParticipant) {
			utils.JSONError(c, http.StatusForbidden, "not a participant", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to mark read", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

// ArchiveConversation hides a conversation from the inbox list.
func (hb *HandlerBundle) ArchiveConversation(c *gin.Context) {
	if err := hb.Chat.Archive(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to archive conversation", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived": true})
}

// GetUnreadTotal returns the caller's total unread message count.
func (hb *HandlerBundle) GetUnreadTotal(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)
	total, err := hb.Chat.UnreadTotal(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch unread count", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": total})
}
