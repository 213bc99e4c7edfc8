package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestUserHandlerCreateAndFilter(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewUserHandler(env.users)

	for _, body := range []gin.H{
		{"email": "dr.ivanova@example.com", "full_name": "Elena Ivanova", "role": "doctor"},
		{"email": "petar@example.com", "full_name": "Petar Dimitrov"},
	} {
		c, recorder := newContext(http.MethodPost, "/api/admin/users", body, "admin-1")
		handler.Create(c)
		assertStatus(t, recorder, http.StatusCreated)
	}

	c, recorder := newContext(http.MethodGet, "/api/admin/users?query=IVANOVA", nil, "admin-1")
	handler.List(c)
	assertStatus(t, recorder, http.StatusOK)
	var users []map[string]any
	payload := decodeResponse(t, recorder, &users)
	require.EqualValues(t, 1, payload.Meta.Total)
	require.Equal(t, "doctor", users[0]["role"])

	c, recorder = newContext(http.MethodGet, "/api/admin/users?role=patient&limit=1", nil, "admin-1")
	handler.List(c)
	assertStatus(t, recorder, http.StatusOK)
	payload = decodeResponse(t, recorder, &users)
	require.EqualValues(t, 2, payload.Meta.Total)
	require.Equal(t, 1, payload.Meta.Limit)
	require.True(t, payload.Meta.HasMore)
	require.Len(t, users, 1)
	require.Equal(t, "Dana Koleva", users[0]["full_name"])
}

func TestUserHandlerCreateValidation(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewUserHandler(env.users)

	c, recorder := newContext(http.MethodPost, "/api/admin/users", gin.H{"email": "not-an-email", "full_name": "X"}, "admin-1")
	handler.Create(c)
	assertStatus(t, recorder, http.StatusBadRequest)

	c, recorder = newContext(http.MethodPost, "/api/admin/users", gin.H{"email": "x@example.com", "full_name": "X", "role": "nurse"}, "admin-1")
	handler.Create(c)
	assertStatus(t, recorder, http.StatusBadRequest)
	payload := decodeResponse(t, recorder, nil)
	require.Contains(t, payload.Error.Message, "role must be one of")

	c, recorder = newContext(http.MethodPost, "/api/admin/users", gin.H{"email": env.user.Email, "full_name": "Duplicate"}, "admin-1")
	handler.Create(c)
	assertStatus(t, recorder, http.StatusConflict)
}

func TestUserHandlerGet(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewUserHandler(env.users)

	c, recorder := newContext(http.MethodGet, "/api/admin/users/"+env.user.ID, nil, "admin-1")
	c.Params = gin.Params{{Key: "id", Value: env.user.ID}}
	handler.Get(c)
	assertStatus(t, recorder, http.StatusOK)

	c, recorder = newContext(http.MethodGet, "/api/admin/users/missing", nil, "admin-1")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.Get(c)
	assertStatus(t, recorder, http.StatusNotFound)
}
