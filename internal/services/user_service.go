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

// CreateUserInput describes the fields accepted when creating a user.
type CreateUserInput struct {
	Email    string
	FullName string
	Phone    string
	Role     string
	Language string
	IsActive *bool
}

// UserFilter narrows the admin user table. Query matches a case-insensitive
// substring of the full name or email; Role must match exactly.
type UserFilter struct {
	Query  string
	Role   string
	Limit  int
	Offset int
}

// UserService manages user accounts.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a UserService instance.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

// Create provisions a new user. Role defaults to patient.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)
	role := strings.ToLower(strings.TrimSpace(defaultIfEmpty(input.Role, models.RolePatient)))
	if email == "" {
		return nil, apperrors.NewBadRequest("email is required")
	}
	if fullName == "" {
		return nil, apperrors.NewBadRequest("full name is required")
	}
	if !models.ValidRole(role) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown role %q", input.Role))
	}

	user := &models.User{
		Email:    email,
		FullName: fullName,
		Phone:    strings.TrimSpace(input.Phone),
		Role:     role,
		Language: i18n.NormaliseCode(input.Language),
		IsActive: true,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict.WithInternal(err)
		}
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	// gorm skips zero values that carry a default tag, so persist an explicit deactivation.
	if !user.IsActive {
		if err := s.db.WithContext(ctx).Model(user).Update("is_active", false).Error; err != nil {
			return nil, fmt.Errorf("user service: deactivate user: %w", err)
		}
	}

	return user, nil
}

// GetByID loads a user by identifier.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: get user: %w", err)
	}
	return &user, nil
}

// List retrieves users matching filter ordered by name.
func (s *UserService) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	ctx = ensureContext(ctx)

	role := strings.ToLower(strings.TrimSpace(filter.Role))
	if role != "" && !models.ValidRole(role) {
		return nil, 0, apperrors.NewBadRequest(fmt.Sprintf("unknown role %q", filter.Role))
	}

	scope := func(db *gorm.DB) *gorm.DB {
		if role != "" {
			db = db.Where("role = ?", role)
		}
		if q := strings.TrimSpace(filter.Query); q != "" {
			pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
			db = db.Where("search_key LIKE ? ESCAPE '"+likeEscape+"'", pattern)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("user service: count users: %w", err)
	}

	limit, offset := pageWindow(filter.Limit, filter.Offset, 50, 200)

	var users []models.User
	if err := s.db.WithContext(ctx).
		Scopes(scope).
		Order("full_name ASC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("user service: list users: %w", err)
	}

	return users, total, nil
}
