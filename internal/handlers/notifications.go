package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/errors"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
)

// NotificationHandler exposes HTTP endpoints for the notification feed.
type NotificationHandler struct {
	service *services.NotificationService
	catalog *i18n.Catalog
}

type createNotificationRequest struct {
	UserID         string         `json:"user_id" validate:"required"`
	Category       string         `json:"category" validate:"required,notification_category"`
	Priority       string         `json:"priority" validate:"omitempty,notification_priority"`
	Title          string         `json:"title" validate:"required,max=255"`
	Message        string         `json:"message" validate:"max=2000"`
	ActionRequired bool           `json:"action_required"`
	Metadata       map[string]any `json:"metadata"`
}

// NewNotificationHandler constructs a notification handler.
func NewNotificationHandler(service *services.NotificationService, catalog *i18n.Catalog) *NotificationHandler {
	return &NotificationHandler{service: service, catalog: catalog}
}

// List returns the caller's feed rendered in the request locale.
// GET /api/notifications?category=&unread=&limit=&offset=&lang=
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	feed, err := h.service.Feed(requestContext(c), services.FeedInput{
		ListNotificationsInput: services.ListNotificationsInput{
			UserID:     userID,
			Category:   c.Query("category"),
			UnreadOnly: parseBoolQuery(c, "unread"),
			Limit:      parseIntQuery(c, "limit", 0),
			Offset:     parseIntQuery(c, "offset", 0),
		},
		Locale: requestLocale(c, h.catalog),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := response.NewMeta(feed.Limit, feed.Offset, feed.Total)
	meta.Locale = feed.Locale
	response.SuccessWithMeta(c, http.StatusOK, feed.Items, meta)
}

// Counts returns badge and tab counters.
// GET /api/notifications/counts
func (h *NotificationHandler) Counts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	counts, err := h.service.Counts(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, counts)
}

// Create stores a notification for any user. Restricted to staff roles by the router.
// POST /api/notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	var body createNotificationRequest
	if !bindAndValidate(c, &body) {
		return
	}

	dto, err := h.service.Create(requestContext(c), services.CreateNotificationInput{
		UserID:         strings.TrimSpace(body.UserID),
		Category:       body.Category,
		Priority:       body.Priority,
		Title:          body.Title,
		Message:        body.Message,
		ActionRequired: body.ActionRequired,
		Metadata:       body.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// MarkRead toggles a notification to read.
// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	h.updateReadState(c, true)
}

// MarkUnread toggles a notification to unread.
// POST /api/notifications/:id/unread
func (h *NotificationHandler) MarkUnread(c *gin.Context) {
	h.updateReadState(c, false)
}

func (h *NotificationHandler) updateReadState(c *gin.Context, read bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, errors.NewBadRequest("notification id is required"))
		return
	}

	var (
		dto *services.NotificationDTO
		err error
	)
	if read {
		dto, err = h.service.MarkRead(requestContext(c), userID, id)
	} else {
		dto, err = h.service.MarkUnread(requestContext(c), userID, id)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// MarkAllRead marks every unread notification read.
// POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updated, err := h.service.MarkAllRead(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

// Delete removes a notification.
// DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if err := h.service.Delete(requestContext(c), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
