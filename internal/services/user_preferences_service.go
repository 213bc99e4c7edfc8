package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
	apperrors "github.com/stanielhristov/medical-reservation-sub004/pkg/errors"
)

// UserPreferences represents persisted user-level customisations. An empty
// Language means the request headers or the server default decide.
type UserPreferences struct {
	Language string `json:"language"`
}

// UserPreferencesService reads and writes per-user display preferences.
type UserPreferencesService struct {
	db      *gorm.DB
	catalog *i18n.Catalog
}

// NewUserPreferencesService constructs a UserPreferencesService with the supplied dependencies.
func NewUserPreferencesService(db *gorm.DB, catalog *i18n.Catalog) (*UserPreferencesService, error) {
	if db == nil {
		return nil, errors.New("user preferences service: db is required")
	}
	if catalog == nil {
		return nil, errors.New("user preferences service: catalog is required")
	}
	return &UserPreferencesService{db: db, catalog: catalog}, nil
}

// Get returns the stored preferences for the specified user.
func (s *UserPreferencesService) Get(ctx context.Context, userID string) (UserPreferences, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return UserPreferences{}, apperrors.NewBadRequest("user id is required")
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Select("id", "language").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserPreferences{}, ErrUserNotFound
		}
		return UserPreferences{}, fmt.Errorf("user preferences service: load user preferences: %w", err)
	}

	return UserPreferences{Language: user.Language}, nil
}

// Update persists preference changes for the specified user. Languages are
// stored as their primary subtag; unsupported languages are rejected.
func (s *UserPreferencesService) Update(ctx context.Context, userID string, prefs UserPreferences) (UserPreferences, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return UserPreferences{}, apperrors.NewBadRequest("user id is required")
	}

	language := i18n.NormaliseCode(prefs.Language)
	if language != "" && !s.catalog.Supports(language) {
		return UserPreferences{}, ErrUnsupportedLanguage
	}

	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("language", language)
	if result.Error != nil {
		return UserPreferences{}, fmt.Errorf("user preferences service: update preferences: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return UserPreferences{}, ErrUserNotFound
	}

	return s.Get(ctx, userID)
}
