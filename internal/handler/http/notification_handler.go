package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/handler/http/dto"
	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

type NotificationHandler struct {
	notificationUsecase usecasecontract.INotificationUseCase
}

func NewNotificationHandler(notificationUsecase usecasecontract.INotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUsecase: notificationUsecase}
}

// ListNotifications handles the receiver-scoped notification listing
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, limit := parsePagination(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.notificationUsecase.ListNotifications(c.Request.Context(), actor, unreadOnly, page, limit)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ListResponse{
		Data:       notifications,
		Pagination: dto.NewPagination(page, limit, total),
	})
}

// UnreadCount returns the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	count, err := h.notificationUsecase.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"unread": count})
}

// MarkRead marks a single notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if err := h.notificationUsecase.MarkRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Notification marked as read")
}

// MarkAllRead marks every notification of the caller as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if err := h.notificationUsecase.MarkAllRead(c.Request.Context(), actor); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "All notifications marked as read")
}

// DeleteNotification removes a notification of the caller
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if err := h.notificationUsecase.DeleteNotification(c.Request.Context(), actor, c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Notification deleted successfully")
}
