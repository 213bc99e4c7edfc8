package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stanielhristov/medical-reservation-sub004/internal/database/testutil"
	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/middleware"
	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
	"github.com/stanielhristov/medical-reservation-sub004/internal/notifications"
	"github.com/stanielhristov/medical-reservation-sub004/internal/realtime"
	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
)

var handlerNow = time.Date(2025, time.December, 7, 18, 0, 0, 0, time.UTC)

type handlerEnv struct {
	db            *gorm.DB
	catalog       *i18n.Catalog
	notifications *services.NotificationService
	users         *services.UserService
	prefs         *services.UserPreferencesService
	user          models.User
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	catalog, err := i18n.NewCatalog(i18n.Config{
		Source:    i18n.English,
		Default:   i18n.English,
		Supported: []string{i18n.English, i18n.Bulgarian},
	})
	require.NoError(t, err)

	formatter := notifications.NewFormatter(catalog, notifications.WithClock(func() time.Time { return handlerNow }))
	notificationSvc, err := services.NewNotificationService(db, realtime.NewHub(), formatter)
	require.NoError(t, err)
	userSvc, err := services.NewUserService(db)
	require.NoError(t, err)
	prefSvc, err := services.NewUserPreferencesService(db, catalog)
	require.NoError(t, err)

	user := models.User{
		BaseModel: models.BaseModel{ID: "user-handler"},
		Email:     "dana@example.com",
		FullName:  "Dana Koleva",
		Role:      models.RolePatient,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&user).Error)

	return &handlerEnv{
		db:            db,
		catalog:       catalog,
		notifications: notificationSvc,
		users:         userSvc,
		prefs:         prefSvc,
		user:          user,
	}
}

// newContext builds a gin context authenticated as userID. An empty userID
// leaves the request anonymous.
func newContext(method, target string, body any, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	var payload *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, target, payload)
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != "" {
		c.Set(middleware.CtxUserIDKey, userID)
	}
	return c, recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder, data any) response.Response {
	t.Helper()
	var payload response.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	if data != nil && payload.Data != nil {
		raw, err := json.Marshal(payload.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}
	return payload
}

func assertStatus(t *testing.T, recorder *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, recorder.Code, recorder.Body.String())
}
