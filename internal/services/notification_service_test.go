package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
	"github.com/stanielhristov/medical-reservation-sub004/internal/notifications"
	"github.com/stanielhristov/medical-reservation-sub004/internal/realtime"
	apperrors "github.com/stanielhristov/medical-reservation-sub004/pkg/errors"
)

func newNotificationService(t *testing.T, opts ...NotificationOption) (*NotificationService, *models.User) {
	t.Helper()
	db := openServicesDB(t)
	user := createTestUser(t, db, "user-1", "maria@example.com", models.RolePatient)

	opts = append([]NotificationOption{WithNotificationClock(func() time.Time { return fixedNow })}, opts...)
	svc, err := NewNotificationService(db, realtime.NewHub(), newTestFormatter(t), opts...)
	require.NoError(t, err)
	return svc, &user
}

func TestNewNotificationServiceRequiresDependencies(t *testing.T) {
	_, err := NewNotificationService(nil, nil, newTestFormatter(t))
	require.Error(t, err)

	_, err = NewNotificationService(openServicesDB(t), nil, nil)
	require.Error(t, err)
}

func TestNotificationServiceCreateAndList(t *testing.T) {
	svc, user := newNotificationService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateNotificationInput{
		UserID:   user.ID,
		Category: "appointments",
		Priority: "HIGH",
		Title:    notifications.TitleAppointmentConfirmed,
		Message:  "Your appointment has been confirmed for Sunday, December 7, 2025 at 4:00 PM.",
		Metadata: map[string]any{"appointment_id": "apt-1"},
	})
	require.NoError(t, err)
	require.Equal(t, "appointments", dto.Category)
	require.Equal(t, "high", dto.Priority)
	require.Equal(t, "apt-1", dto.Metadata["appointment_id"])

	items, total, err := svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, dto.ID, items[0].ID)
	require.False(t, items[0].IsRead)
}

func TestNotificationServiceCreateValidation(t *testing.T) {
	svc, user := newNotificationService(t)
	ctx := context.Background()

	cases := []CreateNotificationInput{
		{UserID: "", Category: "system", Title: "x"},
		{UserID: user.ID, Category: "all", Title: "x"},
		{UserID: user.ID, Category: "billing", Title: "x"},
		{UserID: user.ID, Category: "system", Priority: "urgent", Title: "x"},
		{UserID: user.ID, Category: "system", Title: "  "},
	}
	for _, input := range cases {
		_, err := svc.Create(ctx, input)
		require.Error(t, err, "%+v", input)
		require.Equal(t, apperrors.ErrBadRequest.Code, apperrors.FromError(err).Code)
	}

	_, err := svc.Create(ctx, CreateNotificationInput{UserID: "ghost", Category: "system", Title: "x"})
	require.ErrorIs(t, err, ErrUserNotFound)

	dto, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Category: "system", Title: "Maintenance"})
	require.NoError(t, err)
	require.Equal(t, "medium", dto.Priority)
}

func TestNotificationServiceListFilters(t *testing.T) {
	svc, user := newNotificationService(t)
	ctx := context.Background()

	for _, category := range []string{"appointments", "appointments", "reminders", "health"} {
		_, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Category: category, Title: category})
		require.NoError(t, err)
	}
	items, _, err := svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID, Category: "appointments"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	_, err = svc.MarkRead(ctx, user.ID, items[0].ID)
	require.NoError(t, err)

	items, total, err := svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID, Category: "appointments", UnreadOnly: true})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)

	_, total, err = svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID, Category: "all", UnreadOnly: true})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)

	_, _, err = svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID, Category: "billing"})
	require.Error(t, err)

	_, _, err = svc.ListForUser(ctx, ListNotificationsInput{})
	require.Error(t, err)
}

func TestNotificationServicePagination(t *testing.T) {
	svc, user := newNotificationService(t, WithPageSizes(2, 3))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Category: "system", Title: "n"})
		require.NoError(t, err)
	}

	items, total, err := svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, items, 2)

	items, _, err = svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID, Limit: 50})
	require.NoError(t, err)
	require.Len(t, items, 3)

	items, _, err = svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID, Limit: 3, Offset: 3})
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestNotificationServiceFeedTranslates(t *testing.T) {
	svc, user := newNotificationService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateNotificationInput{
		UserID:   user.ID,
		Category: "appointments",
		Priority: "high",
		Title:    notifications.TitleNewAppointmentRequest,
		Message:  "You have a new appointment request from Jane Doe for Monday, January 5, 2026 at 9:30 AM.",
	})
	require.NoError(t, err)

	catalog := svc.formatter.Catalog()
	feed, err := svc.Feed(ctx, FeedInput{
		ListNotificationsInput: ListNotificationsInput{UserID: user.ID},
		Locale:                 catalog.Locale("bg"),
	})
	require.NoError(t, err)
	require.Equal(t, "bg", feed.Locale)
	require.EqualValues(t, 1, feed.Total)
	require.Equal(t, DefaultNotificationPageSize, feed.Limit)
	require.Len(t, feed.Items, 1)

	item := feed.Items[0]
	require.Equal(t, "Нова заявка за час", item.Title)
	require.Contains(t, item.Message, "Jane Doe")
	require.Contains(t, item.Message, "9:30 сутринта")
	require.Equal(t, notifications.IconCalendar, item.Icon)

	english, err := svc.Feed(ctx, FeedInput{ListNotificationsInput: ListNotificationsInput{UserID: user.ID}})
	require.NoError(t, err)
	require.Equal(t, "en", english.Locale)
	require.Equal(t, "You have a new appointment request from Jane Doe for Monday, January 5, 2026 at 9:30 AM.", english.Items[0].Message)
}

func TestNotificationServiceCounts(t *testing.T) {
	svc, user := newNotificationService(t)
	ctx := context.Background()

	var first *NotificationDTO
	for _, category := range []string{"appointments", "appointments", "reminders"} {
		dto, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Category: category, Title: category})
		require.NoError(t, err)
		if first == nil {
			first = dto
		}
	}
	_, err := svc.MarkRead(ctx, user.ID, first.ID)
	require.NoError(t, err)

	counts, err := svc.Counts(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, counts.Total)
	require.EqualValues(t, 2, counts.Unread)
	require.EqualValues(t, 2, counts.ByCategory["appointments"])
	require.EqualValues(t, 1, counts.UnreadByCategory["appointments"])
	require.EqualValues(t, 1, counts.UnreadByCategory["reminders"])
	require.Contains(t, counts.ByCategory, "health")
	require.Zero(t, counts.ByCategory["health"])
}

func TestNotificationServiceMarkReadAndUnread(t *testing.T) {
	svc, user := newNotificationService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Category: "system", Title: "Welcome"})
	require.NoError(t, err)

	updated, err := svc.MarkRead(ctx, user.ID, dto.ID)
	require.NoError(t, err)
	require.True(t, updated.IsRead)
	require.NotNil(t, updated.ReadAt)
	require.True(t, updated.ReadAt.Equal(fixedNow))

	updated, err = svc.MarkUnread(ctx, user.ID, dto.ID)
	require.NoError(t, err)
	require.False(t, updated.IsRead)
	require.Nil(t, updated.ReadAt)

	items, _, err := svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID})
	require.NoError(t, err)
	require.False(t, items[0].IsRead)
	require.Nil(t, items[0].ReadAt)
}

func TestNotificationServiceOwnershipIsEnforced(t *testing.T) {
	svc, user := newNotificationService(t)
	ctx := context.Background()
	other := createTestUser(t, svc.db, "user-2", "ivan@example.com", models.RolePatient)

	dto, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Category: "system", Title: "Private"})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, other.ID, dto.ID)
	require.ErrorIs(t, err, ErrNotificationNotFound)
	require.ErrorIs(t, svc.Delete(ctx, other.ID, dto.ID), ErrNotificationNotFound)

	require.NoError(t, svc.Delete(ctx, user.ID, dto.ID))
	require.ErrorIs(t, svc.Delete(ctx, user.ID, dto.ID), ErrNotificationNotFound)
}

func TestNotificationServiceMarkAllRead(t *testing.T) {
	svc, user := newNotificationService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, CreateNotificationInput{UserID: user.ID, Category: "reminders", Title: "Take medication"})
		require.NoError(t, err)
	}

	changed, err := svc.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, changed)

	changed, err = svc.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, changed)

	counts, err := svc.Counts(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, counts.Unread)
}

func TestNotificationServicePurges(t *testing.T) {
	svc, user := newNotificationService(t)
	ctx := context.Background()

	oldRead := fixedNow.Add(-40 * 24 * time.Hour)
	recentRead := fixedNow.Add(-2 * 24 * time.Hour)
	rows := []models.Notification{
		{BaseModel: models.BaseModel{CreatedAt: fixedNow.Add(-50 * 24 * time.Hour)}, UserID: user.ID, Category: "system", Title: "old read", IsRead: true, ReadAt: &oldRead},
		{BaseModel: models.BaseModel{CreatedAt: fixedNow.Add(-3 * 24 * time.Hour)}, UserID: user.ID, Category: "system", Title: "recent read", IsRead: true, ReadAt: &recentRead},
		{BaseModel: models.BaseModel{CreatedAt: fixedNow.Add(-200 * 24 * time.Hour)}, UserID: user.ID, Category: "system", Title: "ancient unread"},
		{BaseModel: models.BaseModel{CreatedAt: fixedNow.Add(-time.Hour)}, UserID: user.ID, Category: "system", Title: "fresh"},
	}
	for i := range rows {
		require.NoError(t, svc.db.Create(&rows[i]).Error)
	}

	purged, err := svc.PurgeRead(ctx, fixedNow.Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	purged, err = svc.PurgeOlderThan(ctx, fixedNow.Add(-180*24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	items, _, err := svc.ListForUser(ctx, ListNotificationsInput{UserID: user.ID})
	require.NoError(t, err)
	titles := []string{items[0].Title, items[1].Title}
	require.ElementsMatch(t, []string{"recent read", "fresh"}, titles)
}

func TestNotificationDTOView(t *testing.T) {
	dto := NotificationDTO{ID: "n-1", Category: "health", Priority: "low", Title: "t", Message: "m", CreatedAt: fixedNow, IsRead: true}
	view := dto.View()
	require.Equal(t, notifications.CategoryHealth, view.Category)
	require.Equal(t, notifications.PriorityLow, view.Priority)
	require.Equal(t, fixedNow, view.Timestamp)
	require.True(t, view.IsRead)
}
