package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/stanielhristov/medical-reservation-sub004/internal/app"
	iauth "github.com/stanielhristov/medical-reservation-sub004/internal/auth"
	"github.com/stanielhristov/medical-reservation-sub004/internal/handlers"
	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/middleware"
	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring"
	"github.com/stanielhristov/medical-reservation-sub004/internal/realtime"
	"github.com/stanielhristov/medical-reservation-sub004/internal/security"
	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
)

// Dependencies are the long-lived components the router shares with the rest
// of the server. Health and Hub are optional.
type Dependencies struct {
	Catalog       *i18n.Catalog
	Notifications *services.NotificationService
	Hub           *realtime.Hub
	Health        *monitoring.HealthManager
}

// NewRouter builds the Gin engine, wires middleware and registers the API routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config, deps Dependencies) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("locale catalog must be provided")
	}
	if deps.Notifications == nil {
		return nil, fmt.Errorf("notification service must be provided")
	}

	userSvc, err := services.NewUserService(db)
	if err != nil {
		return nil, err
	}
	prefsSvc, err := services.NewUserPreferencesService(db, deps.Catalog)
	if err != nil {
		return nil, err
	}
	languages := preferredLanguage(prefsSvc)

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())

	registerHealthRoutes(r, cfg, deps.Health)

	// The stream authenticates from the query string because browsers cannot
	// set headers on a websocket upgrade.
	if deps.Hub != nil {
		stream := handlers.NewRealtimeHandler(deps.Hub, jwt, deps.Catalog, languages)
		r.GET("/api/notifications/stream", stream.Stream)
	}

	api := r.Group("/api")
	api.Use(middleware.Auth(jwt))
	api.Use(middleware.Locale(deps.Catalog, languages))

	registerNotificationRoutes(api, handlers.NewNotificationHandler(deps.Notifications, deps.Catalog))
	registerProfileRoutes(api, handlers.NewProfileHandler(userSvc, prefsSvc))
	registerUserRoutes(api, handlers.NewUserHandler(userSvc))

	securityHandler, err := handlers.NewSecurityHandler(security.NewAuditService(db, jwt, cfg))
	if err != nil {
		return nil, err
	}
	registerSecurityRoutes(api, securityHandler)

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}

func preferredLanguage(prefs *services.UserPreferencesService) middleware.LanguageLookup {
	return func(ctx context.Context, userID string) (string, error) {
		stored, err := prefs.Get(ctx, userID)
		if err != nil {
			return "", err
		}
		return stored.Language, nil
	}
}
