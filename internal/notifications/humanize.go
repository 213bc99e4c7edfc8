package notifications

import (
	"time"

	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
)

const day = 24 * time.Hour

// TimeAgo renders the elapsed time between ts and now as a relative label.
// Whole units are floored and every threshold is strict, so exactly one hour
// reads "1 hour ago" rather than "60 minutes ago". Timestamps in the future
// read as "now".
func TimeAgo(loc *i18n.Locale, now, ts time.Time) string {
	elapsed := now.Sub(ts)
	if elapsed < time.Minute {
		return loc.T(i18n.KeyTimeNow)
	}
	if elapsed < time.Hour {
		return loc.C(i18n.KeyTimeMinutesAgo, int(elapsed/time.Minute))
	}
	if elapsed < day {
		return loc.C(i18n.KeyTimeHoursAgo, int(elapsed/time.Hour))
	}
	return loc.C(i18n.KeyTimeDaysAgo, int(elapsed/day))
}
