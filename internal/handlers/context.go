package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/middleware"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/errors"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID returns the authenticated user, writing a 401 when there is none.
func currentUserID(c *gin.Context) (string, bool) {
	userID := strings.TrimSpace(c.GetString(middleware.CtxUserIDKey))
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return "", false
	}
	return userID, true
}

// requestLocale returns the locale resolved by the locale middleware, falling
// back to the catalog default.
func requestLocale(c *gin.Context, catalog *i18n.Catalog) *i18n.Locale {
	if loc := middleware.LocaleFrom(c); loc != nil {
		return loc
	}
	return catalog.Default()
}
