package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
	"github.com/stanielhristov/medical-reservation-sub004/internal/notifications"
	"github.com/stanielhristov/medical-reservation-sub004/internal/realtime"
	apperrors "github.com/stanielhristov/medical-reservation-sub004/pkg/errors"
)

// Page size defaults used when the service is built without explicit limits.
const (
	DefaultNotificationPageSize = 25
	MaxNotificationPageSize     = 100
)

// NotificationDTO represents the stored, untranslated notification.
type NotificationDTO struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Category       string         `json:"category"`
	Priority       string         `json:"priority"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	ActionRequired bool           `json:"action_required"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	IsRead         bool           `json:"is_read"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	ReadAt         *time.Time     `json:"read_at,omitempty"`
}

// View converts the record into the formatting pipeline's input.
func (d NotificationDTO) View() notifications.Notification {
	return notifications.Notification{
		ID:             d.ID,
		Category:       notifications.Category(d.Category),
		Priority:       notifications.Priority(d.Priority),
		Title:          d.Title,
		Message:        d.Message,
		Timestamp:      d.CreatedAt,
		IsRead:         d.IsRead,
		ActionRequired: d.ActionRequired,
	}
}

// CreateNotificationInput defines attributes required to persist a notification.
type CreateNotificationInput struct {
	UserID         string
	Category       string
	Priority       string
	Title          string
	Message        string
	ActionRequired bool
	Metadata       map[string]any
}

// ListNotificationsInput defines filters for querying user notifications.
// Category "all" or empty disables the category filter.
type ListNotificationsInput struct {
	UserID     string
	Category   string
	UnreadOnly bool
	Limit      int
	Offset     int
}

// FeedInput selects a page of the feed and the locale to render it in.
type FeedInput struct {
	ListNotificationsInput
	Locale *i18n.Locale
}

// Feed is a rendered page of notifications.
type Feed struct {
	Items  []notifications.Display `json:"items"`
	Total  int64                   `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
	Locale string                  `json:"locale"`
}

// NotificationCounts feeds dashboard badges and category tabs.
type NotificationCounts struct {
	Total            int64            `json:"total"`
	Unread           int64            `json:"unread"`
	ByCategory       map[string]int64 `json:"by_category"`
	UnreadByCategory map[string]int64 `json:"unread_by_category"`
}

// NotificationEventPayload represents data sent to realtime consumers.
type NotificationEventPayload struct {
	Notification   *notifications.Display `json:"notification,omitempty"`
	NotificationID string                 `json:"notification_id,omitempty"`
}

// NotificationOption customises a NotificationService.
type NotificationOption func(*NotificationService)

// WithPageSizes overrides the default and maximum page sizes.
func WithPageSizes(defaultSize, maxSize int) NotificationOption {
	return func(s *NotificationService) {
		if defaultSize > 0 {
			s.defaultPageSize = defaultSize
		}
		if maxSize > 0 {
			s.maxPageSize = maxSize
		}
	}
}

// WithNotificationClock overrides the clock used for read timestamps.
func WithNotificationClock(now func() time.Time) NotificationOption {
	return func(s *NotificationService) {
		if now != nil {
			s.now = now
		}
	}
}

// NotificationService manages user in-app notifications.
type NotificationService struct {
	db              *gorm.DB
	hub             *realtime.Hub
	formatter       *notifications.Formatter
	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
}

// NewNotificationService constructs a NotificationService. hub may be nil to
// disable realtime delivery.
func NewNotificationService(db *gorm.DB, hub *realtime.Hub, formatter *notifications.Formatter, opts ...NotificationOption) (*NotificationService, error) {
	if db == nil {
		return nil, errors.New("notification service: db is required")
	}
	if formatter == nil {
		return nil, errors.New("notification service: formatter is required")
	}

	svc := &NotificationService{
		db:              db,
		hub:             hub,
		formatter:       formatter,
		defaultPageSize: DefaultNotificationPageSize,
		maxPageSize:     MaxNotificationPageSize,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.defaultPageSize > svc.maxPageSize {
		svc.defaultPageSize = svc.maxPageSize
	}
	return svc, nil
}

// ListForUser returns a page of notifications ordered by recency together
// with the number of rows matching the filter.
func (s *NotificationService) ListForUser(ctx context.Context, input ListNotificationsInput) ([]NotificationDTO, int64, error) {
	ctx = ensureContext(ctx)
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, 0, apperrors.NewBadRequest("user id is required")
	}

	category, ok := notifications.ParseCategory(defaultIfEmpty(input.Category, string(notifications.CategoryAll)))
	if !ok {
		return nil, 0, apperrors.NewBadRequest(fmt.Sprintf("unknown category %q", input.Category))
	}

	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", userID)
		if category != notifications.CategoryAll {
			db = db.Where("category = ?", string(category))
		}
		if input.UnreadOnly {
			db = db.Where("is_read = ?", false)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Notification{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("notification service: count notifications: %w", err)
	}

	limit, offset := pageWindow(input.Limit, input.Offset, s.defaultPageSize, s.maxPageSize)

	var rows []models.Notification
	if err := s.db.WithContext(ctx).
		Scopes(filter).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("notification service: list notifications: %w", err)
	}

	return mapNotificationRows(rows), total, nil
}

// Feed renders a page of notifications for display in input.Locale.
func (s *NotificationService) Feed(ctx context.Context, input FeedInput) (*Feed, error) {
	rows, total, err := s.ListForUser(ctx, input.ListNotificationsInput)
	if err != nil {
		return nil, err
	}

	loc := input.Locale
	if loc == nil {
		loc = s.formatter.Catalog().Default()
	}

	views := make([]notifications.Notification, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.View())
	}

	limit, offset := pageWindow(input.Limit, input.Offset, s.defaultPageSize, s.maxPageSize)
	return &Feed{
		Items:  s.formatter.FormatAll(loc, views),
		Total:  total,
		Limit:  limit,
		Offset: offset,
		Locale: loc.Code(),
	}, nil
}

// Counts summarises a user's notifications by category and read state.
func (s *NotificationService) Counts(ctx context.Context, userID string) (*NotificationCounts, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.NewBadRequest("user id is required")
	}

	var rows []struct {
		Category string
		IsRead   bool
		Count    int64
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Select("category, is_read, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category, is_read").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("notification service: count by category: %w", err)
	}

	counts := &NotificationCounts{
		ByCategory:       make(map[string]int64, len(notifications.Categories())),
		UnreadByCategory: make(map[string]int64, len(notifications.Categories())),
	}
	for _, category := range notifications.Categories() {
		counts.ByCategory[string(category)] = 0
		counts.UnreadByCategory[string(category)] = 0
	}
	for _, row := range rows {
		counts.Total += row.Count
		counts.ByCategory[row.Category] += row.Count
		if !row.IsRead {
			counts.Unread += row.Count
			counts.UnreadByCategory[row.Category] += row.Count
		}
	}
	return counts, nil
}

// Create stores a new notification and pushes it to the recipient's open
// connections.
func (s *NotificationService) Create(ctx context.Context, input CreateNotificationInput) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, apperrors.NewBadRequest("user id is required")
	}

	category, ok := notifications.ParseCategory(input.Category)
	if !ok || category == notifications.CategoryAll {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown category %q", input.Category))
	}
	priority, ok := notifications.ParsePriority(defaultIfEmpty(input.Priority, string(notifications.PriorityMedium)))
	if !ok {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown priority %q", input.Priority))
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}

	var recipients int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&recipients).Error; err != nil {
		return nil, fmt.Errorf("notification service: load recipient: %w", err)
	}
	if recipients == 0 {
		return nil, ErrUserNotFound
	}

	metadata, err := encodeJSON(input.Metadata)
	if err != nil {
		return nil, fmt.Errorf("notification service: marshal metadata: %w", err)
	}

	notification := models.Notification{
		UserID:         userID,
		Category:       string(category),
		Priority:       string(priority),
		Title:          title,
		Message:        strings.TrimSpace(input.Message),
		ActionRequired: input.ActionRequired,
		Metadata:       metadata,
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("notification service: create notification: %w", err)
	}

	dto := mapNotification(notification)
	s.broadcast(userID, realtime.EventNotificationCreated, &dto, dto.ID)
	return &dto, nil
}

// MarkRead sets the notification read flag for a user.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) (*NotificationDTO, error) {
	now := s.now().UTC()
	return s.setRead(ctx, userID, notificationID, true, &now, realtime.EventNotificationRead)
}

// MarkUnread clears the notification read flag.
func (s *NotificationService) MarkUnread(ctx context.Context, userID, notificationID string) (*NotificationDTO, error) {
	return s.setRead(ctx, userID, notificationID, false, nil, realtime.EventNotificationUnread)
}

func (s *NotificationService) setRead(ctx context.Context, userID, notificationID string, read bool, readAt *time.Time, event string) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)

	notification, err := s.load(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(notification).
		Updates(map[string]any{
			"is_read": read,
			"read_at": readAt,
		}).Error; err != nil {
		return nil, fmt.Errorf("notification service: update read state: %w", err)
	}

	notification.IsRead = read
	notification.ReadAt = readAt
	dto := mapNotification(*notification)

	s.broadcast(userID, event, &dto, dto.ID)
	return &dto, nil
}

// MarkAllRead marks all notifications for the user as read and returns how
// many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, apperrors.NewBadRequest("user id is required")
	}

	result := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": s.now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: mark all read: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		s.broadcast(userID, realtime.EventNotificationsRead, nil, "")
	}
	return result.RowsAffected, nil
}

// Delete removes a notification owned by the supplied user.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	ctx = ensureContext(ctx)
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("notification service: delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	s.broadcast(userID, realtime.EventNotificationDeleted, nil, notificationID)
	return nil
}

// PurgeRead deletes notifications that were read before cutoff.
func (s *NotificationService) PurgeRead(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)
	result := s.db.WithContext(ctx).
		Where("is_read = ? AND read_at IS NOT NULL AND read_at < ?", true, cutoff.UTC()).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: purge read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// PurgeOlderThan deletes every notification created before cutoff.
func (s *NotificationService) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)
	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: purge expired: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *NotificationService) load(ctx context.Context, userID, notificationID string) (*models.Notification, error) {
	var notification models.Notification
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("notification service: load notification: %w", err)
	}
	return &notification, nil
}

// broadcast renders the notification separately for each subscriber locale.
func (s *NotificationService) broadcast(userID, event string, dto *NotificationDTO, notificationID string) {
	if s.hub == nil {
		return
	}

	message := realtime.Message{Event: event}
	if dto != nil || notificationID != "" {
		view := notifications.Notification{}
		if dto != nil {
			view = dto.View()
		}
		catalog := s.formatter.Catalog()
		message.Render = func(locale string) any {
			payload := &NotificationEventPayload{NotificationID: notificationID}
			if dto != nil {
				display := s.formatter.Format(catalog.Locale(locale), view)
				payload.Notification = &display
			}
			return payload
		}
	}
	s.hub.BroadcastToUser(realtime.StreamNotifications, userID, message)
}

func mapNotificationRows(rows []models.Notification) []NotificationDTO {
	items := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapNotification(row))
	}
	return items
}

func mapNotification(row models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             row.ID,
		UserID:         row.UserID,
		Category:       row.Category,
		Priority:       defaultIfEmpty(row.Priority, string(notifications.PriorityMedium)),
		Title:          row.Title,
		Message:        row.Message,
		ActionRequired: row.ActionRequired,
		Metadata:       decodeJSON(row.Metadata),
		IsRead:         row.IsRead,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		ReadAt:         row.ReadAt,
	}
}
