package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring"
)

const defaultRetentionMaxAge = 48 * time.Hour

// RetentionObserver reports the outcome of the most recent retention run.
type RetentionObserver interface {
	LastRun() (at time.Time, err error)
}

// Retention reports degraded when the retention jobs have not completed within
// maxAge or when the last run failed. A cleaner that has not run yet is up.
func Retention(observer RetentionObserver, maxAge time.Duration) monitoring.Check {
	maxAge = chooseTimeout(maxAge, defaultRetentionMaxAge)
	return monitoring.NewCheck("retention", func(context.Context) monitoring.ProbeResult {
		if observer == nil {
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "retention disabled"}
		}

		at, err := observer.LastRun()
		switch {
		case at.IsZero():
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "pending first run"}
		case err != nil:
			return monitoring.ProbeResult{Status: monitoring.StatusDegraded, Details: err.Error()}
		case time.Since(at) > maxAge:
			return monitoring.ProbeResult{
				Status:  monitoring.StatusDegraded,
				Details: fmt.Sprintf("stale run %s", at.UTC().Format(time.RFC3339)),
			}
		}
		return monitoring.ProbeResult{Status: monitoring.StatusUp}
	})
}
