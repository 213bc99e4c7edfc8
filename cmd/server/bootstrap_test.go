package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stanielhristov/medical-reservation-sub004/internal/app"
	"github.com/stanielhristov/medical-reservation-sub004/internal/app/maintenance"
	iauth "github.com/stanielhristov/medical-reservation-sub004/internal/auth"
	"github.com/stanielhristov/medical-reservation-sub004/internal/database"
	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/notifications"
	"github.com/stanielhristov/medical-reservation-sub004/internal/realtime"
	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
)

func testConfig(t *testing.T) *app.Config {
	t.Helper()

	cfg, err := app.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Database.Path = filepath.Join(t.TempDir(), "medres.sqlite")
	cfg.Auth.JWT.Secret = strings.Repeat("s", app.MinJWTSecretBytes)
	return cfg
}

func TestBootstrapRuntime(t *testing.T) {
	cfg := testConfig(t)

	stack, err := bootstrapRuntime(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { stack.Shutdown(context.Background(), zap.NewNop()) })

	require.NotNil(t, stack.Router)
	require.NotNil(t, stack.Health)
	require.ElementsMatch(t, []string{"en", "bg"}, stack.Catalog.Codes())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	stack.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	stack.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBootstrapRuntimeRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	_, err := bootstrapRuntime(context.Background(), cfg, zap.NewNop())
	require.ErrorContains(t, err, "unsupported database driver")
}

func TestShutdownRunsFinalRetention(t *testing.T) {
	cfg := testConfig(t)

	stack, err := bootstrapRuntime(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	cleaner := stack.Cleaner
	stack.Shutdown(context.Background(), zap.NewNop())

	lastRun, lastErr := cleaner.LastRun()
	require.NoError(t, lastErr)
	require.WithinDuration(t, time.Now(), lastRun, time.Minute)
	require.Nil(t, stack.DB)

	// A second shutdown is a no-op.
	stack.Shutdown(context.Background(), zap.NewNop())
}

func TestShutdownAfterFailedBootstrapSkipsRetention(t *testing.T) {
	cfg := testConfig(t)
	db, err := initialiseDatabase(cfg)
	require.NoError(t, err)

	catalog, err := i18n.NewCatalog(cfg.I18n.CatalogConfig())
	require.NoError(t, err)
	notificationSvc, err := services.NewNotificationService(db, realtime.NewHub(), notifications.NewFormatter(catalog))
	require.NoError(t, err)

	cleaner := maintenance.NewCleaner(notificationSvc, cfg.Notifications.Retention.CleanerOptions()...)
	require.NoError(t, cleaner.Start())

	stack := &runtimeStack{DB: db, Catalog: catalog, Notifications: notificationSvc, Cleaner: cleaner}
	stack.Shutdown(context.Background(), zap.NewNop())

	lastRun, lastErr := cleaner.LastRun()
	require.NoError(t, lastErr)
	require.True(t, lastRun.IsZero())
	require.Nil(t, stack.DB)
}

func TestIssueToken(t *testing.T) {
	cfg := testConfig(t)
	db, err := initialiseDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { closeDatabase(db, nil) })

	users, err := services.NewUserService(db)
	require.NoError(t, err)

	token, err := issueToken(context.Background(), cfg, users, database.SystemAdminID)
	require.NoError(t, err)

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	require.NoError(t, err)
	claims, err := jwtSvc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, database.SystemAdminID, claims.UserID)
	require.Equal(t, "admin", claims.Role)

	_, err = issueToken(context.Background(), cfg, users, "missing-user")
	require.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"migrate"}, &out)
	require.ErrorContains(t, err, "unknown command")
}

func TestTokenRequiresUser(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"token"}, &out)
	require.ErrorContains(t, err, "-user is required")
}

func TestLoadApplicationConfigMissingPath(t *testing.T) {
	_, err := loadApplicationConfig(filepath.Join(t.TempDir(), "missing"))
	require.ErrorContains(t, err, "does not exist")
}
