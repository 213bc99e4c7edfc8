package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stanielhristov/medical-reservation-sub004/internal/app/maintenance"
	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
)

func TestDatabaseConnectionConfig(t *testing.T) {
	t.Run("sqlite default", func(t *testing.T) {
		cfg := DatabaseConfig{Path: " ./data/medres.sqlite "}.ConnectionConfig()
		require.Equal(t, "sqlite", cfg.Driver)
		require.Equal(t, "./data/medres.sqlite", cfg.Path)
		require.Empty(t, cfg.Host)
	})

	t.Run("postgres alias", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver: "PostgreSQL",
			Postgres: DBAuthConfig{
				Host:     "db",
				Port:     5432,
				Database: "medres",
				Username: "svc",
				Password: " pw ",
				Options:  map[string]string{"sslmode": "disable"},
			},
			MaxOpenConns:    8,
			ConnMaxLifetime: time.Minute,
		}.ConnectionConfig()

		require.Equal(t, "postgres", cfg.Driver)
		require.Equal(t, "db", cfg.Host)
		require.Equal(t, 5432, cfg.Port)
		require.Equal(t, "medres", cfg.Name)
		require.Equal(t, "svc", cfg.User)
		require.Equal(t, " pw ", cfg.Password)
		require.Equal(t, "disable", cfg.Options["sslmode"])
		require.Equal(t, 8, cfg.MaxOpenConns)
		require.Equal(t, time.Minute, cfg.ConnMaxLifetime)
	})

	t.Run("mariadb uses mysql block", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver: "mariadb",
			MySQL:  DBAuthConfig{Host: "mysql", Port: 3306},
		}.ConnectionConfig()
		require.Equal(t, "mysql", cfg.Driver)
		require.Equal(t, "mysql", cfg.Host)
		require.Equal(t, 3306, cfg.Port)
	})

	t.Run("unknown driver is passed through", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "oracle"}.ConnectionConfig()
		require.Equal(t, "oracle", cfg.Driver)
	})
}

func TestCatalogConfigBuildsCatalog(t *testing.T) {
	cfg := I18nConfig{
		SourceLocale:     "en",
		DefaultLocale:    "bg",
		SupportedLocales: []string{" en ", "", "bg"},
	}.CatalogConfig()

	require.Equal(t, []string{"en", "bg"}, cfg.Supported)

	catalog, err := i18n.NewCatalog(cfg)
	require.NoError(t, err)
	require.Equal(t, "bg", catalog.Default().Code())
}

func TestNotificationServiceOptions(t *testing.T) {
	require.Nil(t, NotificationsConfig{}.ServiceOptions())
	require.Len(t, NotificationsConfig{DefaultPageSize: 10, MaxPageSize: 20}.ServiceOptions(), 1)
}

func TestRetentionCleanerOptions(t *testing.T) {
	opts := RetentionConfig{ReadDays: 7, MaxDays: 30, Schedule: "@hourly"}.CleanerOptions()
	require.Len(t, opts, 3)

	cleaner := maintenance.NewCleaner(nil, opts...)
	require.NotNil(t, cleaner)

	require.Len(t, RetentionConfig{}.CleanerOptions(), 2)
}
