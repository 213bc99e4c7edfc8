package notifications

// Colour triples per priority. Unknown priorities render neutral gray.
var (
	highColors    = ColorTriple{Background: "#fef2f2", Foreground: "#dc2626", Border: "#fecaca"}
	mediumColors  = ColorTriple{Background: "#fffbeb", Foreground: "#d97706", Border: "#fde68a"}
	lowColors     = ColorTriple{Background: "#f0fdf4", Foreground: "#16a34a", Border: "#bbf7d0"}
	neutralColors = ColorTriple{Background: "#f9fafb", Foreground: "#6b7280", Border: "#e5e7eb"}
)

// PriorityColors returns the colour triple for a priority.
func PriorityColors(priority Priority) ColorTriple {
	switch priority {
	case PriorityHigh:
		return highColors
	case PriorityMedium:
		return mediumColors
	case PriorityLow:
		return lowColors
	default:
		return neutralColors
	}
}

// CategoryIcon returns the icon for a category, defaulting to the bell.
func CategoryIcon(category Category) Icon {
	switch category {
	case CategoryAppointments:
		return IconCalendar
	case CategoryReminders:
		return IconClock
	case CategoryHealth:
		return IconHeart
	case CategorySystem:
		return IconSettings
	default:
		return IconBell
	}
}

// Classify derives the display metadata of a notification.
func Classify(n Notification) DisplayMetadata {
	return DisplayMetadata{
		Icon:   CategoryIcon(n.Category),
		Colors: PriorityColors(n.Priority),
	}
}
