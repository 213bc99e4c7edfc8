package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stanielhristov/medical-reservation-sub004/internal/api"
	"github.com/stanielhristov/medical-reservation-sub004/internal/app"
	iauth "github.com/stanielhristov/medical-reservation-sub004/internal/auth"
	sharedtestutil "github.com/stanielhristov/medical-reservation-sub004/internal/database/testutil"
	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring"
	"github.com/stanielhristov/medical-reservation-sub004/internal/monitoring/checks"
	"github.com/stanielhristov/medical-reservation-sub004/internal/notifications"
	"github.com/stanielhristov/medical-reservation-sub004/internal/realtime"
	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
)

// Now is the frozen clock the test formatter renders relative times against.
var Now = time.Date(2025, time.December, 7, 18, 0, 0, 0, time.UTC)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T             *testing.T
	DB            *gorm.DB
	Router        *gin.Engine
	JWT           *iauth.JWTService
	Config        *app.Config
	Catalog       *i18n.Catalog
	Hub           *realtime.Hub
	Notifications *services.NotificationService
}

// EnvOption customises the configuration an Env is built with.
type EnvOption func(*app.Config)

// NewEnv provisions a fresh API test environment with migrations and seed data applied.
func NewEnv(t *testing.T, opts ...EnvOption) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithSeedData())

	jwtSecret := "test-suite-super-secret-key-32-bytes!!"
	cfg := &app.Config{
		Auth: app.AuthConfig{
			JWT: app.JWTSettings{
				Secret: jwtSecret,
				Issuer: "test-suite",
				TTL:    time.Hour,
			},
		},
		I18n: app.I18nConfig{
			SourceLocale:     i18n.English,
			DefaultLocale:    i18n.English,
			SupportedLocales: []string{i18n.English, i18n.Bulgarian},
		},
		Notifications: app.NotificationsConfig{DefaultPageSize: 25, MaxPageSize: 100},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	require.NoError(t, err)

	catalog, err := i18n.NewCatalog(cfg.I18n.CatalogConfig())
	require.NoError(t, err)

	hub := realtime.NewHub()
	formatter := notifications.NewFormatter(catalog, notifications.WithClock(func() time.Time { return Now }))
	notificationSvc, err := services.NewNotificationService(db, hub, formatter, cfg.Notifications.ServiceOptions()...)
	require.NoError(t, err)

	health := monitoring.NewHealthManager()
	health.RegisterReadiness(checks.Database(db, time.Second))

	router, err := api.NewRouter(db, jwtSvc, cfg, api.Dependencies{
		Catalog:       catalog,
		Notifications: notificationSvc,
		Hub:           hub,
		Health:        health,
	})
	require.NoError(t, err)

	return &Env{
		T:             t,
		DB:            db,
		Router:        router,
		JWT:           jwtSvc,
		Config:        cfg,
		Catalog:       catalog,
		Hub:           hub,
		Notifications: notificationSvc,
	}
}

// CreateUser inserts an active user with the given role and preferred
// language and returns the record.
func (e *Env) CreateUser(role, language string) *models.User {
	e.T.Helper()

	id := uuid.NewString()
	user := &models.User{
		BaseModel: models.BaseModel{ID: id},
		Email:     role + "-" + id + "@example.com",
		FullName:  "Test " + role,
		Role:      role,
		Language:  language,
		IsActive:  true,
	}
	require.NoError(e.T, e.DB.Create(user).Error)
	return user
}

// TokenFor issues an access token carrying the user's id and role.
func (e *Env) TokenFor(user *models.User) string {
	e.T.Helper()

	token, err := e.JWT.GenerateAccessToken(iauth.AccessTokenInput{
		UserID: user.ID,
		Role:   user.Role,
	})
	require.NoError(e.T, err)
	return token
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
	Meta    *response.Meta      `json:"meta"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes an HTTP request against the test router, applying JSON encoding and auth headers automatically.
func (e *Env) Request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.T.Helper()
	return e.RequestWithHeaders(method, path, body, token, nil)
}

// RequestWithHeaders is Request with extra request headers, e.g. Accept-Language.
func (e *Env) RequestWithHeaders(method, path string, body any, token string, headers map[string]string) *httptest.ResponseRecorder {
	e.T.Helper()

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.T, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
