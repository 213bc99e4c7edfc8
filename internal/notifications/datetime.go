package notifications

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/logger"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/metrics"
)

// BackendDateTimeLayout is the layout the appointment service writes dates in,
// e.g. "Sunday, December 7, 2025 at 4:00 PM".
const BackendDateTimeLayout = "Monday, January 2, 2006 at 3:04 PM"

var backendDateTimePattern = regexp.MustCompile(
	`(?i)^\s*([a-z]+),\s*([a-z]+)\s+(\d{1,2}),\s*(\d{4})\s+at\s+(\d{1,2}):(\d{2})\s*(am|pm)\s*$`,
)

var monthIndex = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// parseBackendDateTime reads a backend date string. The weekday text is not
// trusted; it is derived again from the calendar date.
func parseBackendDateTime(value string) (time.Time, bool) {
	m := backendDateTimePattern.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, false
	}

	month, ok := monthIndex[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	dayOfMonth, _ := strconv.Atoi(m[3])
	year, _ := strconv.Atoi(m[4])
	hour, _ := strconv.Atoi(m[5])
	minute, _ := strconv.Atoi(m[6])
	if hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, false
	}

	t := time.Date(year, month, dayOfMonth, to24Hour(hour, m[7]), minute, 0, 0, time.UTC)
	if t.Day() != dayOfMonth || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

func to24Hour(hour int, meridiem string) int {
	pm := strings.EqualFold(meridiem, "pm")
	switch {
	case pm && hour != 12:
		return hour + 12
	case !pm && hour == 12:
		return 0
	default:
		return hour
	}
}

// ReformatDateTime re-renders a backend date string in the conventions of loc.
// Locales that do not reformat dates get the value back untouched, and so does
// any value that does not parse.
func ReformatDateTime(loc *i18n.Locale, value string) string {
	if !loc.ReformatDates() {
		return value
	}

	t, ok := parseBackendDateTime(value)
	if !ok {
		logger.WithModule("notifications").Warn("unable to reformat date",
			zap.String("locale", loc.Code()),
			zap.String("value", value),
		)
		metrics.DateReformatFailures.WithLabelValues(loc.Code()).Inc()
		return value
	}

	return loc.T(i18n.KeyDateTime,
		loc.WeekdayWide(t.Weekday()),
		strconv.Itoa(t.Day()),
		loc.MonthWide(t.Month()),
		strconv.Itoa(t.Year()),
		strconv.Itoa(t.Hour()),
		twoDigits(t.Minute()),
		loc.Period(t.Hour()),
	)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
