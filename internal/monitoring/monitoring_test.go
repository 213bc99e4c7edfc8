package monitoring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stanielhristov/medical-reservation-sub004/internal/database/testutil"
	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring"
	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring/checks"
)

type fakeRetention struct {
	at  time.Time
	err error
}

func (f fakeRetention) LastRun() (time.Time, error) { return f.at, f.err }

func TestHealthManagerAggregatesWorstStatus(t *testing.T) {
	manager := monitoring.NewHealthManager()
	manager.RegisterLiveness(monitoring.NewCheck("self", func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: monitoring.StatusUp}
	}))
	manager.RegisterReadiness(monitoring.NewCheck("slow", func(context.Context) monitoring.ProbeResult {
		return monitoring.ResultFromError("slow", context.DeadlineExceeded, time.Millisecond)
	}))

	require.True(t, manager.EvaluateLiveness(context.Background()).Success)

	report := manager.Evaluate(context.Background())
	require.False(t, report.Success)
	require.Equal(t, monitoring.StatusDegraded, report.Status)
	require.Len(t, report.Checks, 2)
	require.Equal(t, "self", report.Checks[0].Component)
	require.Equal(t, "slow", report.Checks[1].Component)

	manager.RegisterReadiness(monitoring.NewCheck("broken", nil))
	report = manager.EvaluateReadiness(context.Background())
	require.Equal(t, monitoring.StatusDown, report.Status)
}

func TestHealthManagerRecoversPanickingProbe(t *testing.T) {
	manager := monitoring.NewHealthManager()
	manager.RegisterReadiness(monitoring.NewCheck("panics", func(context.Context) monitoring.ProbeResult {
		panic("kaboom")
	}))

	report := manager.EvaluateReadiness(context.Background())
	require.Equal(t, monitoring.StatusDown, report.Status)
	require.Equal(t, "panics", report.Checks[0].Component)
	require.Equal(t, "kaboom", report.Checks[0].Details)
}

func TestDatabaseCheck(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	result := checks.Database(db, time.Second).Run(context.Background())
	require.Equal(t, monitoring.StatusUp, result.Status)

	result = checks.Database(nil, time.Second).Run(context.Background())
	require.Equal(t, monitoring.StatusDown, result.Status)
}

func TestRetentionCheck(t *testing.T) {
	ctx := context.Background()

	require.Equal(t, monitoring.StatusUp, checks.Retention(nil, 0).Run(ctx).Status)
	require.Equal(t, monitoring.StatusUp, checks.Retention(fakeRetention{}, 0).Run(ctx).Status)
	require.Equal(t, monitoring.StatusUp, checks.Retention(fakeRetention{at: time.Now()}, time.Hour).Run(ctx).Status)

	stale := checks.Retention(fakeRetention{at: time.Now().Add(-2 * time.Hour)}, time.Hour).Run(ctx)
	require.Equal(t, monitoring.StatusDegraded, stale.Status)
	require.Contains(t, stale.Details, "stale run")

	failed := checks.Retention(fakeRetention{at: time.Now(), err: errors.New("purge read: locked")}, time.Hour).Run(ctx)
	require.Equal(t, monitoring.StatusDegraded, failed.Status)
	require.Equal(t, "purge read: locked", failed.Details)
}
