package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	iauth "github.com/stanielhristov/medical-reservation-sub004/internal/auth"
)

func newTestJWT(t *testing.T) *iauth.JWTService {
	t.Helper()
	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{
		Secret:         "secret",
		Issuer:         "test-suite",
		AccessTokenTTL: time.Minute,
	})
	require.NoError(t, err)
	return jwtSvc
}

func issueToken(t *testing.T, jwtSvc *iauth.JWTService, userID, role string) string {
	t.Helper()
	token, err := jwtSvc.GenerateAccessToken(iauth.AccessTokenInput{UserID: userID, Role: role})
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jwtSvc := newTestJWT(t)
	token := issueToken(t, jwtSvc, "user-123", "Doctor")

	r := gin.New()
	r.GET("/secure", Auth(jwtSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserIDKey),
			"role":    c.GetString(CtxRoleKey),
		})
	})

	// Missing Authorization header -> 401
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token -> 401 with challenge
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	// Valid token -> downstream handler executes
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Equal(t, "user-123", payload["user_id"])
	require.Equal(t, "doctor", payload["role"])
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def")
	require.True(t, ok)
	require.Equal(t, "abc.def", token)

	_, ok = BearerToken("Basic abc")
	require.False(t, ok)

	_, ok = BearerToken("Bearer    ")
	require.False(t, ok)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jwtSvc := newTestJWT(t)
	r := gin.New()
	r.GET("/admin", Auth(jwtSvc), RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/unguarded", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	cases := []struct {
		role string
		want int
	}{
		{role: "admin", want: http.StatusNoContent},
		{role: "patient", want: http.StatusForbidden},
		{role: "", want: http.StatusForbidden},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtSvc, "user-1", tc.role))
		r.ServeHTTP(w, req)
		require.Equal(t, tc.want, w.Code, "role %q", tc.role)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unguarded", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
