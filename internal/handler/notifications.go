package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Strife-cyber/agro/internal/middleware"
	"github.com/Strife-cyber/agro/internal/repository"
)

// NotificationsHandler reads straight from the repository: listing a
// user's own notifications needs no workflow logic.
type NotificationsHandler struct{ repo repository.NotificationRepository }

func NewNotificationsHandler(repo repository.NotificationRepository) *NotificationsHandler {
	return &NotificationsHandler{repo: repo}
}

// List godoc
// @Summary List the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {array} object
// @Router /v1/notifications [get]
func (h *NotificationsHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.repo.ListByUser(c.Request.Context(), actor.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, gin.H{
			"id":         n.ID.String(),
			"type":       n.Type,
			"message":    n.Message,
			"status":     n.Status,
			"created_at": n.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}
