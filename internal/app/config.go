package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment variables that override configuration
// keys, e.g. MEDRES_SERVER_PORT.
const EnvPrefix = "MEDRES"

// Config represents the runtime configuration for the notification service.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Auth          AuthConfig          `mapstructure:"auth"`
	I18n          I18nConfig          `mapstructure:"i18n"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Monitoring    MonitoringConfig    `mapstructure:"monitoring"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// DatabaseConfig describes connection options for the supported databases.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	DSN             string        `mapstructure:"dsn"`
	Postgres        DBAuthConfig  `mapstructure:"postgres"`
	MySQL           DBAuthConfig  `mapstructure:"mysql"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Host     string            `mapstructure:"host"`
	Port     int               `mapstructure:"port"`
	Database string            `mapstructure:"database"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	Options  map[string]string `mapstructure:"options"`
}

// AuthConfig captures the settings used to validate bearer tokens.
type AuthConfig struct {
	JWT JWTSettings `mapstructure:"jwt"`
}

// JWTSettings configures JWT access tokens.
type JWTSettings struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"access_token_ttl"`
}

// I18nConfig selects the languages notifications are rendered in.
type I18nConfig struct {
	SourceLocale     string   `mapstructure:"source_locale"`
	DefaultLocale    string   `mapstructure:"default_locale"`
	SupportedLocales []string `mapstructure:"supported_locales"`
}

// NotificationsConfig tunes feed paging and retention.
type NotificationsConfig struct {
	DefaultPageSize int             `mapstructure:"default_page_size"`
	MaxPageSize     int             `mapstructure:"max_page_size"`
	Retention       RetentionConfig `mapstructure:"retention"`
}

// RetentionConfig drives the background purge of old notifications. A
// non-positive day count disables the matching job.
type RetentionConfig struct {
	ReadDays int    `mapstructure:"read_days"`
	MaxDays  int    `mapstructure:"max_days"`
	Schedule string `mapstructure:"schedule"`
}

// MonitoringConfig enables health checks and metrics.
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Health     HealthConfig     `mapstructure:"health_check"`
}

// PrometheusConfig toggles metrics endpoints.
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// HealthConfig toggles health endpoints.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/medres.sqlite")
	v.SetDefault("database.dsn", "")

	v.SetDefault("auth.jwt.secret", "")
	v.SetDefault("auth.jwt.issuer", "medres")
	v.SetDefault("auth.jwt.access_token_ttl", "15m")

	v.SetDefault("i18n.source_locale", "en")
	v.SetDefault("i18n.default_locale", "en")
	v.SetDefault("i18n.supported_locales", []string{"en", "bg"})

	v.SetDefault("notifications.default_page_size", 25)
	v.SetDefault("notifications.max_page_size", 100)
	v.SetDefault("notifications.retention.read_days", 30)
	v.SetDefault("notifications.retention.max_days", 180)
	v.SetDefault("notifications.retention.schedule", "@daily")

	v.SetDefault("monitoring.prometheus.enabled", true)
	v.SetDefault("monitoring.prometheus.endpoint", "/metrics")
	v.SetDefault("monitoring.health_check.enabled", true)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Notifications.DefaultPageSize < 0 || c.Notifications.MaxPageSize < 0 {
		return errors.New("config: notification page sizes must not be negative")
	}
	if c.Notifications.MaxPageSize > 0 && c.Notifications.DefaultPageSize > c.Notifications.MaxPageSize {
		return fmt.Errorf("config: notifications.default_page_size %d exceeds max_page_size %d",
			c.Notifications.DefaultPageSize, c.Notifications.MaxPageSize)
	}
	endpoint := strings.TrimSpace(c.Monitoring.Prometheus.Endpoint)
	if c.Monitoring.Prometheus.Enabled && endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		return fmt.Errorf("config: monitoring.prometheus.endpoint %q must start with /", endpoint)
	}
	return nil
}
