package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
)

func TestProfileHandlerGet(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewProfileHandler(env.users, env.prefs)

	c, recorder := newContext(http.MethodGet, "/api/profile", nil, env.user.ID)
	handler.Get(c)
	assertStatus(t, recorder, http.StatusOK)

	var profile map[string]any
	decodeResponse(t, recorder, &profile)
	require.Equal(t, "dana@example.com", profile["email"])
	require.Equal(t, "patient", profile["role"])

	c, recorder = newContext(http.MethodGet, "/api/profile", nil, "ghost")
	handler.Get(c)
	assertStatus(t, recorder, http.StatusNotFound)
}

func TestProfileHandlerPreferencesRoundTrip(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewProfileHandler(env.users, env.prefs)

	c, recorder := newContext(http.MethodPut, "/api/profile/preferences", gin.H{"language": "bg-BG"}, env.user.ID)
	handler.UpdatePreferences(c)
	assertStatus(t, recorder, http.StatusOK)
	var prefs services.UserPreferences
	decodeResponse(t, recorder, &prefs)
	require.Equal(t, "bg", prefs.Language)

	c, recorder = newContext(http.MethodGet, "/api/profile/preferences", nil, env.user.ID)
	handler.GetPreferences(c)
	assertStatus(t, recorder, http.StatusOK)
	decodeResponse(t, recorder, &prefs)
	require.Equal(t, "bg", prefs.Language)

	c, recorder = newContext(http.MethodPut, "/api/profile/preferences", gin.H{"language": ""}, env.user.ID)
	handler.UpdatePreferences(c)
	assertStatus(t, recorder, http.StatusOK)
	decodeResponse(t, recorder, &prefs)
	require.Empty(t, prefs.Language)
}

func TestProfileHandlerRejectsUnsupportedLanguage(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewProfileHandler(env.users, env.prefs)

	c, recorder := newContext(http.MethodPut, "/api/profile/preferences", gin.H{"language": "de"}, env.user.ID)
	handler.UpdatePreferences(c)
	assertStatus(t, recorder, http.StatusBadRequest)
	payload := decodeResponse(t, recorder, nil)
	require.Equal(t, "UNSUPPORTED_LANGUAGE", payload.Error.Code)

	c, recorder = newContext(http.MethodPut, "/api/profile/preferences", gin.H{}, env.user.ID)
	handler.UpdatePreferences(c)
	assertStatus(t, recorder, http.StatusBadRequest)
}
