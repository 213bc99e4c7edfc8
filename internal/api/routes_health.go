package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/app"
	"github.com/stanielhristov/medical-reservation-sub004/internal/handlers"
	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
)

func registerHealthRoutes(r *gin.Engine, cfg *app.Config, manager *monitoring.HealthManager) {
	if !cfg.Monitoring.Health.Enabled {
		r.GET("/health", disabledHealthHandler)
		r.GET("/health/live", disabledHealthHandler)
		r.GET("/health/ready", disabledHealthHandler)
		return
	}

	r.GET("/health", handlers.Health(manager))
	r.GET("/health/live", probeHandler(manager, (*monitoring.HealthManager).EvaluateLiveness))
	r.GET("/health/ready", probeHandler(manager, (*monitoring.HealthManager).EvaluateReadiness))
}

func probeHandler(manager *monitoring.HealthManager, evaluate func(*monitoring.HealthManager, context.Context) monitoring.HealthReport) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil {
			response.Success(c, http.StatusOK, gin.H{"status": monitoring.StatusUp})
			return
		}
		report := evaluate(manager, c.Request.Context())
		status := http.StatusOK
		if !report.Success {
			status = http.StatusServiceUnavailable
		}
		response.Success(c, status, report)
	}
}

func disabledHealthHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"status":  "disabled",
	})
}
