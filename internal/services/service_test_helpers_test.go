package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stanielhristov/medical-reservation-sub004/internal/database/testutil"
	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
	"github.com/stanielhristov/medical-reservation-sub004/internal/notifications"
)

var fixedNow = time.Date(2025, time.December, 7, 18, 0, 0, 0, time.UTC)

func newTestCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	catalog, err := i18n.NewCatalog(i18n.Config{
		Source:    i18n.English,
		Default:   i18n.English,
		Supported: []string{i18n.English, i18n.Bulgarian},
	})
	require.NoError(t, err)
	return catalog
}

func newTestFormatter(t *testing.T) *notifications.Formatter {
	t.Helper()
	return notifications.NewFormatter(newTestCatalog(t), notifications.WithClock(func() time.Time { return fixedNow }))
}

func createTestUser(t *testing.T, db *gorm.DB, id, email, role string) models.User {
	t.Helper()
	user := models.User{
		BaseModel: models.BaseModel{ID: id},
		Email:     email,
		FullName:  email,
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func openServicesDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
}
