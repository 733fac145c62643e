package handlers

import (
	"context"
	"net/http"

	"vijayfix/middleware"
	"vijayfix/models"

	"github.com/gin-gonic/gin"
)

// ChatController is the chat surface of the booking controller.
type ChatController interface {
	Messages() []models.ChatMessage
	Send(ctx context.Context, sender models.Sender, text string) (models.ChatMessage, error)
	UnreadCount(viewer models.Sender) int
	MarkRead(ctx context.Context, viewer models.Sender) int
}

type ChatHandler struct {
	Controller ChatController
}

func NewChatHandler(ctrl ChatController) *ChatHandler {
	return &ChatHandler{Controller: ctrl}
}

// SendMessageRequest is the body of POST /api/chat.
type SendMessageRequest struct {
	Text string `json:"text"`
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	c.JSON(http.StatusOK, h.Controller.Messages())
}

// SendMessage posts a message as the caller's role.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	role, _ := middleware.RoleFrom(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid message", err)
		return
	}
	msg, err := h.Controller.Send(c.Request.Context(), role, req.Text)
	if err != nil {
		respondError(c, "Message not sent", err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) GetUnread(c *gin.Context) {
	role, _ := middleware.RoleFrom(c)
	c.JSON(http.StatusOK, gin.H{"unread": h.Controller.UnreadCount(role)})
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	role, _ := middleware.RoleFrom(c)
	c.JSON(http.StatusOK, gin.H{"marked": h.Controller.MarkRead(c.Request.Context(), role)})
}
