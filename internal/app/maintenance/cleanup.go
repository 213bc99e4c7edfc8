package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/stanielhristov/medical-reservation-sub004/pkg/logger"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/metrics"
)

const (
	defaultReadRetentionDays = 30
	defaultMaxRetentionDays  = 180
	defaultSchedule          = "@daily"

	jobPurgeRead    = "purge_read"
	jobPurgeExpired = "purge_expired"
)

// NotificationPurger deletes notifications past their retention window.
type NotificationPurger interface {
	PurgeRead(ctx context.Context, cutoff time.Time) (int64, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Cleaner runs the notification retention jobs on a cron schedule: read
// notifications are dropped after the read window and every notification after
// the max window.
type Cleaner struct {
	purger   NotificationPurger
	cron     *cron.Cron
	now      func() time.Time
	log      *zap.Logger
	readDays int
	maxDays  int
	schedule string

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used to compute retention cutoffs.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithReadRetentionDays sets how long read notifications are kept. Zero or
// less disables the job.
func WithReadRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		cleaner.readDays = days
	}
}

// WithMaxRetentionDays sets how long any notification is kept. Zero or less
// disables the job.
func WithMaxRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		cleaner.maxDays = days
	}
}

// WithSchedule overrides the cron specification both jobs run on.
func WithSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner. A nil purger disables every job.
func NewCleaner(purger NotificationPurger, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		purger:   purger,
		now:      time.Now,
		readDays: defaultReadRetentionDays,
		maxDays:  defaultMaxRetentionDays,
		schedule: defaultSchedule,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}
	return cleaner
}

// Start registers the retention job with the scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.purger == nil || (c.readDays <= 0 && c.maxDays <= 0) {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("notification retention failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("maintenance: schedule %q: %w", c.schedule, err)
	}

	c.cron.Start()
	c.log.Info("notification retention scheduled",
		zap.String("schedule", c.schedule),
		zap.Int("read_days", c.readDays),
		zap.Int("max_days", c.maxDays),
	)
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes both retention jobs. A failing job does not stop the
// other; their errors are combined.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if c.purger == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := c.now()
	var errs error

	if c.readDays > 0 {
		errs = multierr.Append(errs, c.run(ctx, jobPurgeRead, now.AddDate(0, 0, -c.readDays), c.purger.PurgeRead))
	}
	if c.maxDays > 0 {
		errs = multierr.Append(errs, c.run(ctx, jobPurgeExpired, now.AddDate(0, 0, -c.maxDays), c.purger.PurgeOlderThan))
	}

	c.mu.Lock()
	c.lastRun = now
	c.lastErr = errs
	c.mu.Unlock()

	return errs
}

// LastRun reports when RunOnce last completed and the error it returned.
func (c *Cleaner) LastRun() (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRun, c.lastErr
}

func (c *Cleaner) run(ctx context.Context, job string, cutoff time.Time, purge func(context.Context, time.Time) (int64, error)) error {
	removed, err := purge(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("%s: %w", job, err)
	}
	metrics.NotificationsPurged.WithLabelValues(job).Add(float64(removed))
	if removed > 0 {
		c.log.Info("notifications purged",
			zap.String("job", job),
			zap.Int64("removed", removed),
			zap.Time("cutoff", cutoff),
		)
	}
	return nil
}
