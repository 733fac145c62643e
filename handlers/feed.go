package handlers

import (
	"net/http"

	"vijayfix/middleware"
	"vijayfix/models"
	"vijayfix/services/notification"

	"github.com/gin-gonic/gin"
)

// FeedHandler serves each role's event-built read model.
type FeedHandler struct {
	Views map[models.Sender]*notification.RoleView
}

func NewFeedHandler(views ...*notification.RoleView) *FeedHandler {
	m := make(map[models.Sender]*notification.RoleView, len(views))
	for _, v := range views {
		m[v.Role()] = v
	}
	return &FeedHandler{Views: m}
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	role, _ := middleware.RoleFrom(c)
	view, ok := h.Views[role]
	if !ok {
		respondBadRequest(c, "No feed for role", nil)
		return
	}
	c.JSON(http.StatusOK, view.Feed())
}
