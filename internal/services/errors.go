package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/stanielhristov/medical-reservation-sub004/pkg/errors"
)

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = apperrors.New("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	// ErrNotificationNotFound is returned for missing notifications and for
	// notifications owned by someone else.
	ErrNotificationNotFound = apperrors.New("NOTIFICATION_NOT_FOUND", "Notification not found", http.StatusNotFound)
	// ErrUnsupportedLanguage rejects preference updates to languages without a bundle.
	ErrUnsupportedLanguage = apperrors.New("UNSUPPORTED_LANGUAGE", "Language is not supported", http.StatusBadRequest)
)

// isUniqueConstraintError detects database uniqueness constraint violations across vendors.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil && pgErr.Code == "23505" {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr != nil && myErr.Number == 1062 {
		return true
	}

	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "unique") || strings.Contains(lower, "duplicate")
}
