package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring"
	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring/checks"
)

func TestHealthReportsProbeStatus(t *testing.T) {
	env := newHandlerEnv(t)

	manager := monitoring.NewHealthManager()
	manager.RegisterReadiness(checks.Database(env.db, 0))

	c, recorder := newContext(http.MethodGet, "/health", nil, "")
	Health(manager)(c)
	assertStatus(t, recorder, http.StatusOK)
	var report monitoring.HealthReport
	decodeResponse(t, recorder, &report)
	require.Equal(t, monitoring.StatusUp, report.Status)
	require.Len(t, report.Checks, 1)

	manager.RegisterReadiness(monitoring.NewCheck("cache", func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: monitoring.StatusDown, Details: "unreachable"}
	}))
	c, recorder = newContext(http.MethodGet, "/health", nil, "")
	Health(manager)(c)
	assertStatus(t, recorder, http.StatusServiceUnavailable)
}

func TestHealthWithoutManager(t *testing.T) {
	c, recorder := newContext(http.MethodGet, "/health", nil, "")
	Health(nil)(c)
	assertStatus(t, recorder, http.StatusOK)
}
