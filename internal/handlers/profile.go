package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
	appErrors "github.com/stanielhristov/medical-reservation-sub004/pkg/errors"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
)

// ProfileHandler exposes current-user account endpoints.
type ProfileHandler struct {
	users *services.UserService
	prefs *services.UserPreferencesService
}

// NewProfileHandler configures a profile handler with required services.
func NewProfileHandler(users *services.UserService, prefs *services.UserPreferencesService) *ProfileHandler {
	return &ProfileHandler{users: users, prefs: prefs}
}

type updatePreferencesRequest struct {
	Language *string `json:"language" validate:"required"`
}

// Get returns the authenticated user's profile.
// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, marshalProfileUser(user))
}

// GetPreferences returns the current user's preference profile.
// GET /api/profile/preferences
func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	if h.prefs == nil {
		response.Error(c, appErrors.ErrInternalServer)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	prefs, err := h.prefs.Get(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, prefs)
}

// UpdatePreferences stores the preferred display language. An empty language
// clears the preference.
// PUT /api/profile/preferences
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	if h.prefs == nil {
		response.Error(c, appErrors.ErrInternalServer)
		return
	}

	var body updatePreferencesRequest
	if !bindAndValidate(c, &body) {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updated, err := h.prefs.Update(requestContext(c), userID, services.UserPreferences{Language: *body.Language})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

func marshalProfileUser(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"full_name":  user.FullName,
		"phone":      user.Phone,
		"role":       user.Role,
		"language":   user.Language,
		"is_active":  user.IsActive,
		"created_at": user.CreatedAt,
	}
}
