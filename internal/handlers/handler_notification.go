package handlers

import (
	"net/http"

	portssvc "github.com/centsible/centsible_backend/internal/core/ports/services"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// notificationHandler handles HTTP requests related to notifications.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

// registerNotificationRoutes registers routes related to notifications.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := &notificationHandler{notificationService: notificationService}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/:id/read", h.markRead)
	}
}

// listNotifications godoc
// @Summary List notifications
// @Description Lists the user's notifications, newest first
// @Tags notifications
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.NotificationResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list notifications")
		return
	}

	c.JSON(http.StatusOK, dto.ToListNotificationResponse(notifications))
}

// markRead godoc
// @Summary Mark a notification as read
// @Description Stamps the notification read; marking twice keeps the first timestamp
// @Tags notifications
// @Produce  json
// @Param   id path string true "Notification ID"
// @Success 204 "Marked read"
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to mark notification read")
		return
	}

	c.Status(http.StatusNoContent)
}
