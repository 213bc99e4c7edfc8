package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
)

const (
	defaultUserPageSize = 50
	maxUserPageSize     = 200
)

// UserHandler serves the admin user table.
type UserHandler struct {
	service *services.UserService
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Role     string `json:"role" validate:"omitempty,user_role"`
	Language string `json:"language" validate:"omitempty,max=16"`
	IsActive *bool  `json:"is_active"`
}

// NewUserHandler constructs a user handler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List filters users by a name or email substring and an exact role.
// GET /api/admin/users?query=&role=&limit=&offset=
func (h *UserHandler) List(c *gin.Context) {
	limit := parseIntQuery(c, "limit", defaultUserPageSize)
	if limit <= 0 {
		limit = defaultUserPageSize
	}
	if limit > maxUserPageSize {
		limit = maxUserPageSize
	}
	offset := parseIntQuery(c, "offset", 0)

	users, total, err := h.service.List(requestContext(c), services.UserFilter{
		Query:  c.Query("query"),
		Role:   c.Query("role"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]gin.H, 0, len(users))
	for i := range users {
		items = append(items, marshalProfileUser(&users[i]))
	}
	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(limit, offset, total))
}

// Get returns a single user.
// GET /api/admin/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, marshalProfileUser(user))
}

// Create provisions a user account.
// POST /api/admin/users
func (h *UserHandler) Create(c *gin.Context) {
	var body createUserRequest
	if !bindAndValidate(c, &body) {
		return
	}

	user, err := h.service.Create(requestContext(c), services.CreateUserInput{
		Email:    body.Email,
		FullName: body.FullName,
		Phone:    body.Phone,
		Role:     body.Role,
		Language: body.Language,
		IsActive: body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, marshalProfileUser(user))
}
