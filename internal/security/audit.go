// Package security runs an on-demand audit of the controls protecting patient
// notifications: administrative access, token signing and data retention.
package security

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stanielhristov/medical-reservation-sub004/internal/app"
	iauth "github.com/stanielhristov/medical-reservation-sub004/internal/auth"
	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
)

// CheckStatus captures the outcome of a security audit check.
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusWarn CheckStatus = "warn"
	StatusFail CheckStatus = "fail"
)

// Check IDs reported by Run.
const (
	CheckAdminAccount   = "admin_account_present"
	CheckJWTSecret      = "jwt_secret_strength"
	CheckAccessTokenTTL = "access_token_ttl"
	CheckRetention      = "notification_retention"
)

const (
	maxRecommendedTokenTTL = 24 * time.Hour
	maxRecommendedRetained = 365
)

// Check contains the result of a single audit verification.
type Check struct {
	ID          string      `json:"id"`
	Status      CheckStatus `json:"status"`
	Message     string      `json:"message"`
	Remediation string      `json:"remediation,omitempty"`
	Details     any         `json:"details,omitempty"`
}

// Result aggregates all checks with a simple status summary.
type Result struct {
	CheckedAt time.Time      `json:"checked_at"`
	Checks    []Check        `json:"checks"`
	Summary   map[string]int `json:"summary"`
}

// AuditService evaluates core security controls and configuration.
type AuditService struct {
	db  *gorm.DB
	jwt *iauth.JWTService
	cfg *app.Config
	now func() time.Time
}

// NewAuditService constructs the audit service. All dependencies are optional; missing
// inputs degrade specific checks to warnings.
func NewAuditService(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config) *AuditService {
	return &AuditService{
		db:  db,
		jwt: jwt,
		cfg: cfg,
		now: time.Now,
	}
}

// WithClock overrides the clock used in results.
func (s *AuditService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// Run executes all audit checks and returns their outcome.
func (s *AuditService) Run(ctx context.Context) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	checks := []Check{
		s.checkAdminAccount(ctx),
		s.checkJWTSecret(),
		s.checkAccessTokenTTL(),
		s.checkRetention(),
	}

	summary := map[string]int{
		string(StatusPass): 0,
		string(StatusWarn): 0,
		string(StatusFail): 0,
	}

	for _, check := range checks {
		summary[string(check.Status)]++
	}

	return Result{
		CheckedAt: s.now().UTC(),
		Checks:    checks,
		Summary:   summary,
	}
}

func (s *AuditService) checkAdminAccount(ctx context.Context) Check {
	if s.db == nil {
		return Check{
			ID:          CheckAdminAccount,
			Status:      StatusWarn,
			Message:     "Database unavailable, unable to confirm an administrator exists.",
			Remediation: "Ensure database connectivity before running the audit.",
		}
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Count(&count).Error; err != nil {
		return Check{
			ID:          CheckAdminAccount,
			Status:      StatusWarn,
			Message:     fmt.Sprintf("Could not verify administrators: %v", err),
			Remediation: "Retry after resolving database errors.",
		}
	}

	if count == 0 {
		return Check{
			ID:          CheckAdminAccount,
			Status:      StatusFail,
			Message:     "No active administrator found.",
			Remediation: "Activate an administrator so notifications and users can be managed.",
		}
	}

	return Check{
		ID:      CheckAdminAccount,
		Status:  StatusPass,
		Message: "Active administrator present.",
		Details: map[string]any{"count": count},
	}
}

func (s *AuditService) checkJWTSecret() Check {
	if s.jwt == nil {
		return Check{
			ID:          CheckJWTSecret,
			Status:      StatusWarn,
			Message:     "JWT service not initialised, unable to assess signing secret strength.",
			Remediation: "Initialise JWT service with a strong secret.",
		}
	}

	length := s.jwt.SecretLength()

	switch {
	case length < app.MinJWTSecretBytes:
		return Check{
			ID:          CheckJWTSecret,
			Status:      StatusFail,
			Message:     fmt.Sprintf("JWT signing secret is too short (%d bytes).", length),
			Remediation: fmt.Sprintf("Use a randomly generated secret of at least %d bytes.", app.MinJWTSecretBytes),
		}
	case length < 48:
		return Check{
			ID:          CheckJWTSecret,
			Status:      StatusWarn,
			Message:     fmt.Sprintf("JWT signing secret is %d bytes. Consider increasing to 48+ bytes.", length),
			Remediation: "Increase the length of " + app.EnvPrefix + "_AUTH_JWT_SECRET to at least 48 bytes.",
			Details:     map[string]any{"length": length},
		}
	default:
		return Check{
			ID:      CheckJWTSecret,
			Status:  StatusPass,
			Message: fmt.Sprintf("JWT signing secret length is %d bytes.", length),
			Details: map[string]any{"length": length},
		}
	}
}

func (s *AuditService) checkAccessTokenTTL() Check {
	if s.jwt == nil {
		return Check{
			ID:          CheckAccessTokenTTL,
			Status:      StatusWarn,
			Message:     "JWT service not initialised, unable to evaluate token lifetime.",
			Remediation: "Initialise JWT service before running the security audit.",
		}
	}

	ttl := s.jwt.AccessTokenTTL()
	if ttl > maxRecommendedTokenTTL {
		return Check{
			ID:          CheckAccessTokenTTL,
			Status:      StatusWarn,
			Message:     fmt.Sprintf("Access token TTL (%s) exceeds recommended maximum (%s).", ttl, maxRecommendedTokenTTL),
			Remediation: "Reduce " + app.EnvPrefix + "_AUTH_JWT_ACCESS_TOKEN_TTL to limit exposure of leaked tokens.",
			Details:     map[string]any{"ttl": ttl.String()},
		}
	}

	return Check{
		ID:      CheckAccessTokenTTL,
		Status:  StatusPass,
		Message: fmt.Sprintf("Access token TTL is %s.", ttl),
		Details: map[string]any{"ttl": ttl.String()},
	}
}

func (s *AuditService) checkRetention() Check {
	if s.cfg == nil {
		return Check{
			ID:          CheckRetention,
			Status:      StatusWarn,
			Message:     "Configuration not loaded, unable to evaluate notification retention.",
			Remediation: "Load configuration before running the security audit.",
		}
	}

	retention := s.cfg.Notifications.Retention
	details := map[string]any{"read_days": retention.ReadDays, "max_days": retention.MaxDays}

	switch {
	case retention.MaxDays <= 0:
		return Check{
			ID:          CheckRetention,
			Status:      StatusWarn,
			Message:     "Notifications are kept indefinitely.",
			Remediation: "Set notifications.retention.max_days so old appointment details are purged.",
			Details:     details,
		}
	case retention.MaxDays > maxRecommendedRetained:
		return Check{
			ID:          CheckRetention,
			Status:      StatusWarn,
			Message:     fmt.Sprintf("Notifications are kept for %d days.", retention.MaxDays),
			Remediation: fmt.Sprintf("Reduce notifications.retention.max_days to %d or lower.", maxRecommendedRetained),
			Details:     details,
		}
	default:
		return Check{
			ID:      CheckRetention,
			Status:  StatusPass,
			Message: fmt.Sprintf("Notifications are purged after %d days.", retention.MaxDays),
			Details: details,
		}
	}
}
