package realtime

// Named realtime streams.
const (
	StreamNotifications = "notifications"
)

// Events published on StreamNotifications.
const (
	EventNotificationCreated = "notification.created"
	EventNotificationRead    = "notification.read"
	EventNotificationUnread  = "notification.unread"
	EventNotificationDeleted = "notification.deleted"
	EventNotificationsRead   = "notification.read_all"
)
