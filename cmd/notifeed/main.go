// Command notifeed previews how the notification feed renders for a locale.
//
//	notifeed -lang bg                  # built-in sample feed
//	notifeed -lang bg -file feed.json  # notifications exported from the API
//	cat feed.json | notifeed -file -
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/notifications"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	lang     string
	file     string
	now      string
	width    int
	logLevel string
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("notifeed", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var opts options
	fs.StringVar(&opts.lang, "lang", i18n.Bulgarian, "Language to render the feed in")
	fs.StringVar(&opts.file, "file", "", "JSON file with notifications, - for stdin; empty renders the sample feed")
	fs.StringVar(&opts.now, "now", "", "Reference time for relative timestamps (RFC3339)")
	fs.IntVar(&opts.width, "width", defaultCardWidth, "Card width in columns")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level for pipeline diagnostics")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := logger.InitWithFormat(opts.logLevel, "console"); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync() // best effort

	now := time.Now()
	if strings.TrimSpace(opts.now) != "" {
		parsed, err := time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return fmt.Errorf("parse -now: %w", err)
		}
		now = parsed
	}

	catalog, err := i18n.NewCatalog(i18n.Config{
		Source:    i18n.English,
		Default:   i18n.English,
		Supported: []string{i18n.English, i18n.Bulgarian},
	})
	if err != nil {
		return err
	}
	loc, ok := catalog.Lookup(opts.lang)
	if !ok {
		return fmt.Errorf("unsupported language %q (supported: %s)", opts.lang, strings.Join(catalog.Codes(), ", "))
	}

	items, err := loadNotifications(opts.file, stdin, now)
	if err != nil {
		return err
	}

	formatter := notifications.NewFormatter(catalog, notifications.WithClock(func() time.Time { return now }))
	_, err = io.WriteString(stdout, renderFeed(formatter.FormatAll(loc, items), opts.width))
	return err
}

// feedRecord mirrors the notification JSON returned by the API.
type feedRecord struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	Priority       string    `json:"priority"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
	CreatedAt      time.Time `json:"created_at"`
	IsRead         bool      `json:"is_read"`
	ActionRequired bool      `json:"action_required"`
}

func loadNotifications(path string, stdin io.Reader, now time.Time) ([]notifications.Notification, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return sampleFeed(now), nil
	}

	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open feed: %w", err)
		}
		defer f.Close()
		r = f
	}

	var records []feedRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	items := make([]notifications.Notification, 0, len(records))
	for _, rec := range records {
		category, _ := notifications.ParseCategory(rec.Category)
		priority, _ := notifications.ParsePriority(rec.Priority)
		ts := rec.Timestamp
		if ts.IsZero() {
			ts = rec.CreatedAt
		}
		items = append(items, notifications.Notification{
			ID:             rec.ID,
			Category:       category,
			Priority:       priority,
			Title:          rec.Title,
			Message:        rec.Message,
			Timestamp:      ts,
			IsRead:         rec.IsRead,
			ActionRequired: rec.ActionRequired,
		})
	}
	return items, nil
}

func sampleFeed(now time.Time) []notifications.Notification {
	slot := time.Date(now.Year(), now.Month(), now.Day(), 16, 0, 0, 0, time.UTC).AddDate(0, 0, 2)
	return []notifications.Notification{
		{
			ID:             "sample-1",
			Category:       notifications.CategoryAppointments,
			Priority:       notifications.PriorityHigh,
			Title:          notifications.TitleNewAppointmentRequest,
			Message:        notifications.NewAppointmentRequestMessage("Ivan Petrov", slot),
			Timestamp:      now.Add(-5 * time.Minute),
			ActionRequired: true,
		},
		{
			ID:        "sample-2",
			Category:  notifications.CategoryAppointments,
			Priority:  notifications.PriorityMedium,
			Title:     notifications.TitleAppointmentConfirmed,
			Message:   notifications.AppointmentConfirmedMessage(slot.Add(-90 * time.Minute)),
			Timestamp: now.Add(-3 * time.Hour),
		},
		{
			ID:        "sample-3",
			Category:  notifications.CategoryAppointments,
			Priority:  notifications.PriorityLow,
			Title:     notifications.TitleAppointmentRequested,
			Message:   notifications.AppointmentRequestedMessage(slot.AddDate(0, 0, 5)),
			Timestamp: now.AddDate(0, 0, -2),
			IsRead:    true,
		},
		{
			ID:        "sample-4",
			Category:  notifications.CategorySystem,
			Priority:  notifications.PriorityLow,
			Title:     "Scheduled maintenance",
			Message:   "The portal will be unavailable on Saturday night.",
			Timestamp: now.AddDate(0, 0, -10),
			IsRead:    true,
		},
	}
}
