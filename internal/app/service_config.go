package app

import (
	"strings"

	"github.com/stanielhristov/medical-reservation-sub004/internal/app/maintenance"
	"github.com/stanielhristov/medical-reservation-sub004/internal/database"
	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
)

// ConnectionConfig converts DatabaseConfig into database.Open parameters.
func (c DatabaseConfig) ConnectionConfig() database.Config {
	cfg := database.Config{
		Driver:          strings.ToLower(strings.TrimSpace(c.Driver)),
		Path:            strings.TrimSpace(c.Path),
		DSN:             strings.TrimSpace(c.DSN),
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}

	var host DBAuthConfig
	switch cfg.Driver {
	case "", "sqlite":
		cfg.Driver = "sqlite"
		return cfg
	case "postgres", "postgresql":
		cfg.Driver = "postgres"
		host = c.Postgres
	case "mysql", "mariadb":
		cfg.Driver = "mysql"
		host = c.MySQL
	default:
		// database.Open reports the unsupported driver.
		return cfg
	}

	cfg.Host = strings.TrimSpace(host.Host)
	cfg.Port = host.Port
	cfg.Name = strings.TrimSpace(host.Database)
	cfg.User = strings.TrimSpace(host.Username)
	cfg.Password = host.Password
	cfg.Options = host.Options
	return cfg
}

// CatalogConfig converts I18nConfig into locale catalog parameters.
func (c I18nConfig) CatalogConfig() i18n.Config {
	supported := make([]string, 0, len(c.SupportedLocales))
	for _, code := range c.SupportedLocales {
		if code = strings.TrimSpace(code); code != "" {
			supported = append(supported, code)
		}
	}
	return i18n.Config{
		Source:    strings.TrimSpace(c.SourceLocale),
		Default:   strings.TrimSpace(c.DefaultLocale),
		Supported: supported,
	}
}

// ServiceOptions converts paging settings into NotificationService options.
func (c NotificationsConfig) ServiceOptions() []services.NotificationOption {
	if c.DefaultPageSize <= 0 && c.MaxPageSize <= 0 {
		return nil
	}
	return []services.NotificationOption{services.WithPageSizes(c.DefaultPageSize, c.MaxPageSize)}
}

// CleanerOptions converts retention settings into maintenance.Cleaner options.
func (c RetentionConfig) CleanerOptions() []maintenance.Option {
	opts := []maintenance.Option{
		maintenance.WithReadRetentionDays(c.ReadDays),
		maintenance.WithMaxRetentionDays(c.MaxDays),
	}
	if schedule := strings.TrimSpace(c.Schedule); schedule != "" {
		opts = append(opts, maintenance.WithSchedule(schedule))
	}
	return opts
}
