package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/logger"
)

// CtxLocaleKey holds the *i18n.Locale resolved for the request.
const CtxLocaleKey = "locale"

// LanguageLookup returns the language a user stored in their preferences, or
// an empty string when they have none.
type LanguageLookup func(ctx context.Context, userID string) (string, error)

// Locale resolves the display locale for the request. The order is the "lang"
// query parameter, the authenticated user's stored preference, the
// Accept-Language header and finally the catalog default. Unsupported values
// at any step fall through to the next one.
func Locale(catalog *i18n.Catalog, lookup LanguageLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxLocaleKey, ResolveLocale(c, catalog, lookup))
		c.Next()
	}
}

// ResolveLocale applies the locale precedence rules without touching the context.
func ResolveLocale(c *gin.Context, catalog *i18n.Catalog, lookup LanguageLookup) *i18n.Locale {
	if loc, ok := catalog.Lookup(c.Query("lang")); ok {
		return loc
	}

	if lookup != nil {
		if userID := strings.TrimSpace(c.GetString(CtxUserIDKey)); userID != "" {
			language, err := lookup(c.Request.Context(), userID)
			if err != nil {
				logger.WithModule("http").Debug("language preference lookup failed",
					zap.String("user_id", userID),
					zap.Error(err),
				)
			} else if loc, ok := catalog.Lookup(language); ok {
				return loc
			}
		}
	}

	return catalog.Match(c.GetHeader("Accept-Language"))
}

// LocaleFrom returns the locale stored by Locale, or nil when the middleware did not run.
func LocaleFrom(c *gin.Context) *i18n.Locale {
	v, ok := c.Get(CtxLocaleKey)
	if !ok {
		return nil
	}
	loc, _ := v.(*i18n.Locale)
	return loc
}
