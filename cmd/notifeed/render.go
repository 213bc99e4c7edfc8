package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stanielhristov/medical-reservation-sub004/internal/notifications"
)

const defaultCardWidth = 72

var iconGlyphs = map[notifications.Icon]string{
	notifications.IconBell:     "🔔",
	notifications.IconCalendar: "📅",
	notifications.IconClock:    "⏰",
	notifications.IconHeart:    "❤",
	notifications.IconSettings: "⚙",
}

var (
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Italic(true)
	actionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626"))
)

func renderFeed(items []notifications.Display, width int) string {
	if len(items) == 0 {
		return mutedStyle.Render("(no notifications)") + "\n"
	}

	cards := make([]string, 0, len(items))
	for _, item := range items {
		cards = append(cards, renderCard(item, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...) + "\n"
}

func renderCard(item notifications.Display, width int) string {
	if width <= 0 {
		width = defaultCardWidth
	}

	card := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(item.Colors.Border))
	title := lipgloss.NewStyle().Bold(!item.IsRead).Foreground(lipgloss.Color(item.Colors.Foreground))

	header := strings.TrimSpace(iconGlyphs[item.Icon] + " " + title.Render(item.Title))
	footer := []string{item.TimeAgo, string(item.Category), string(item.Priority)}
	lines := []string{header, item.Message, mutedStyle.Render(strings.Join(footer, " · "))}
	if item.ActionRequired && !item.IsRead {
		lines = append(lines, actionStyle.Render("!"))
	}
	return card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
