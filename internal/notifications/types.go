// Package notifications turns stored notification records into display-ready,
// localised feed entries.
package notifications

import (
	"strings"
	"time"
)

// Category is the coarse classification of a notification.
type Category string

// Notification categories. CategoryAll is a filter value and is never stored.
const (
	CategoryAll          Category = "all"
	CategoryAppointments Category = "appointments"
	CategoryReminders    Category = "reminders"
	CategoryHealth       Category = "health"
	CategorySystem       Category = "system"
)

// Priority is the urgency tier of a notification.
type Priority string

// Notification priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Categories lists the categories a notification can be stored with.
func Categories() []Category {
	return []Category{CategoryAppointments, CategoryReminders, CategoryHealth, CategorySystem}
}

// ParseCategory normalises a category value. The boolean is false for unknown values.
func ParseCategory(value string) (Category, bool) {
	category := Category(strings.ToLower(strings.TrimSpace(value)))
	switch category {
	case CategoryAll, CategoryAppointments, CategoryReminders, CategoryHealth, CategorySystem:
		return category, true
	}
	return category, false
}

// ParsePriority normalises a priority value. The boolean is false for unknown values.
func ParsePriority(value string) (Priority, bool) {
	priority := Priority(strings.ToLower(strings.TrimSpace(value)))
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return priority, true
	}
	return priority, false
}

// Notification is the read-only view the formatting pipeline works on.
type Notification struct {
	ID             string
	Category       Category
	Priority       Priority
	Title          string
	Message        string
	Timestamp      time.Time
	IsRead         bool
	ActionRequired bool
}

// Icon identifies the glyph shown next to a notification.
type Icon string

// Icons used by the dashboards.
const (
	IconBell     Icon = "bell"
	IconCalendar Icon = "calendar"
	IconClock    Icon = "clock"
	IconHeart    Icon = "heart"
	IconSettings Icon = "settings"
)

// ColorTriple holds the background, foreground and border colours of a feed entry.
type ColorTriple struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Border     string `json:"border"`
}

// DisplayMetadata is derived from category and priority on every render.
type DisplayMetadata struct {
	Icon   Icon        `json:"icon"`
	Colors ColorTriple `json:"colors"`
}

// Display is a notification rendered for one locale.
type Display struct {
	ID             string      `json:"id"`
	Category       Category    `json:"category"`
	Priority       Priority    `json:"priority"`
	Title          string      `json:"title"`
	Message        string      `json:"message"`
	TimeAgo        string      `json:"time_ago"`
	Icon           Icon        `json:"icon"`
	Colors         ColorTriple `json:"colors"`
	IsRead         bool        `json:"is_read"`
	ActionRequired bool        `json:"action_required"`
	Timestamp      time.Time   `json:"timestamp"`
	Locale         string      `json:"locale"`

	Rule Rule `json:"-"`
}
