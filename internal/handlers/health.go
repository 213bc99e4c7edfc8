package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
)

// Health reports the aggregated probe results. A probe that is down turns the
// response into a 503; degraded probes still answer 200.
func Health(manager *monitoring.HealthManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil {
			response.Success(c, http.StatusOK, gin.H{"status": monitoring.StatusUp})
			return
		}

		report := manager.Evaluate(requestContext(c))
		status := http.StatusOK
		if report.Status == monitoring.StatusDown {
			status = http.StatusServiceUnavailable
		}
		response.Success(c, status, report)
	}
}
