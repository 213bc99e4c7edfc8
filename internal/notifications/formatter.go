package notifications

import (
	"time"

	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/metrics"
)

// Formatter renders notifications for display. It holds no mutable state and
// is safe for concurrent use.
type Formatter struct {
	catalog *i18n.Catalog
	now     func() time.Time
}

// FormatterOption customises a Formatter.
type FormatterOption func(*Formatter)

// WithClock overrides the clock used for relative timestamps.
func WithClock(now func() time.Time) FormatterOption {
	return func(f *Formatter) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFormatter constructs a Formatter backed by catalog.
func NewFormatter(catalog *i18n.Catalog, opts ...FormatterOption) *Formatter {
	f := &Formatter{
		catalog: catalog,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Catalog exposes the locale catalog the formatter renders with.
func (f *Formatter) Catalog() *i18n.Catalog {
	return f.catalog
}

// Format renders n for loc. A nil locale renders in the catalog default.
func (f *Formatter) Format(loc *i18n.Locale, n Notification) Display {
	return f.format(loc, f.now(), n)
}

// FormatAll renders a batch against a single clock reading.
func (f *Formatter) FormatAll(loc *i18n.Locale, items []Notification) []Display {
	now := f.now()
	out := make([]Display, 0, len(items))
	for _, n := range items {
		out = append(out, f.format(loc, now, n))
	}
	return out
}

func (f *Formatter) format(loc *i18n.Locale, now time.Time, n Notification) Display {
	if loc == nil {
		loc = f.catalog.Default()
	}

	meta := Classify(n)
	translated := TranslateMessage(loc, n.Message)
	metrics.NotificationTranslations.WithLabelValues(loc.Code(), string(translated.Rule)).Inc()

	return Display{
		ID:             n.ID,
		Category:       n.Category,
		Priority:       n.Priority,
		Title:          TranslateTitle(loc, n.Title),
		Message:        translated.Text,
		TimeAgo:        TimeAgo(loc, now, n.Timestamp),
		Icon:           meta.Icon,
		Colors:         meta.Colors,
		IsRead:         n.IsRead,
		ActionRequired: n.ActionRequired,
		Timestamp:      n.Timestamp,
		Locale:         loc.Code(),
		Rule:           translated.Rule,
	}
}
