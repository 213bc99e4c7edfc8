package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stanielhristov/medical-reservation-sub004/internal/api"
	"github.com/stanielhristov/medical-reservation-sub004/internal/app"
	"github.com/stanielhristov/medical-reservation-sub004/internal/app/maintenance"
	iauth "github.com/stanielhristov/medical-reservation-sub004/internal/auth"
	"github.com/stanielhristov/medical-reservation-sub004/internal/database"
	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring"
	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring/checks"
	"github.com/stanielhristov/medical-reservation-sub004/internal/notifications"
	"github.com/stanielhristov/medical-reservation-sub004/internal/realtime"
	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/logger"
)

const databaseProbeTimeout = 2 * time.Second

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB            *gorm.DB
	Catalog       *i18n.Catalog
	Hub           *realtime.Hub
	Notifications *services.NotificationService
	Cleaner       *maintenance.Cleaner
	Health        *monitoring.HealthManager
	Router        *gin.Engine

	// ready is set once bootstrap completed; only then does Shutdown run the
	// final retention pass.
	ready bool
}

// bootstrapRuntime initialises the database, services, background jobs, and the HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	// enable gin debug mod
	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Ping(stack.DB.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	stack.Catalog, err = i18n.NewCatalog(cfg.I18n.CatalogConfig())
	if err != nil {
		return nil, fmt.Errorf("initialise locale catalog: %w", err)
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	if err != nil {
		return nil, fmt.Errorf("initialise jwt service: %w", err)
	}

	stack.Hub = realtime.NewHub()
	formatter := notifications.NewFormatter(stack.Catalog)
	stack.Notifications, err = services.NewNotificationService(stack.DB, stack.Hub, formatter, cfg.Notifications.ServiceOptions()...)
	if err != nil {
		return nil, fmt.Errorf("initialise notification service: %w", err)
	}

	stack.Cleaner = maintenance.NewCleaner(stack.Notifications, cfg.Notifications.Retention.CleanerOptions()...)
	if err := stack.Cleaner.Start(); err != nil {
		return nil, fmt.Errorf("start maintenance jobs: %w", err)
	}

	if cfg.Monitoring.Health.Enabled {
		stack.Health = monitoring.NewHealthManager()
		stack.Health.RegisterLiveness(monitoring.NewCheck("process", func(context.Context) monitoring.ProbeResult {
			return monitoring.ProbeResult{Status: monitoring.StatusUp}
		}))
		stack.Health.RegisterReadiness(checks.Database(stack.DB, databaseProbeTimeout))
		stack.Health.RegisterReadiness(checks.Retention(stack.Cleaner, 0))
	}

	stack.Router, err = api.NewRouter(stack.DB, jwtSvc, cfg, api.Dependencies{
		Catalog:       stack.Catalog,
		Notifications: stack.Notifications,
		Hub:           stack.Hub,
		Health:        stack.Health,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	log.Info("runtime ready",
		zap.Strings("locales", stack.Catalog.Codes()),
		zap.String("default_locale", stack.Catalog.Default().Code()),
	)

	success = true
	stack.ready = true
	return stack, nil
}

// Shutdown gracefully stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		// The context returned by Stop is done once running jobs have returned.
		select {
		case <-s.Cleaner.Stop().Done():
		case <-time.After(shutdownTimeout):
			log.Warn("maintenance jobs still running at shutdown")
		}
		if s.ready {
			if err := s.Cleaner.RunOnce(ctx); err != nil {
				log.Warn("maintenance shutdown cleanup failed", zap.Error(err))
			}
		}
		s.Cleaner = nil
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
		s.DB = nil
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database.ConnectionConfig()
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrateAndSeed(db); err != nil {
		closeDatabase(db, nil)
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", strings.ToLower(strings.TrimSpace(dbCfg.Driver))))

	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}
	if log == nil {
		log = logger.WithModule("database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
