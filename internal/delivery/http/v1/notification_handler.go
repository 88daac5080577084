package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

// NewNotificationHandler registers notification routes. The legacy group
// keeps the old client path /api/notifications/recent working.
func NewNotificationHandler(protected *gin.RouterGroup, legacy *gin.RouterGroup, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notificationUC: notificationUC}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", handler.Recent)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.POST("/:id/read", handler.MarkRead)
		notifications.POST("/read-all", handler.MarkAllRead)
	}

	legacy.GET("/notifications/recent", handler.Recent)
}

// Recent godoc
// @Summary      Recent notifications
// @Description  Returns the caller's notifications, newest first
// @Tags         notifications
// @Produce      json
// @Param        limit  query     int  false  "Max items (default 20)"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) Recent(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.notificationUC.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications retrieved", items)
}

// UnreadCount godoc
// @Summary      Unread notification count
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /notifications/unread-count [get]
// @Security     BearerAuth
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	count, err := h.notificationUC.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Unread count retrieved", gin.H{"count": count})
}

// MarkRead godoc
// @Summary      Mark one notification read
// @Description  Flips is_read on the caller's notification. Other users' rows are untouchable.
// @Tags         notifications
// @Produce      json
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /notifications/{id}/read [post]
// @Security     BearerAuth
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid notification ID"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	if err := h.notificationUC.MarkRead(c.Request.Context(), userID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notification marked read", nil)
}

// MarkAllRead godoc
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /notifications/read-all [post]
// @Security     BearerAuth
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	updated, err := h.notificationUC.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications marked read", gin.H{"updated": updated})
}
