package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/stanielhristov/medical-reservation-sub004/internal/auth"
	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
	"github.com/stanielhristov/medical-reservation-sub004/internal/middleware"
	"github.com/stanielhristov/medical-reservation-sub004/internal/realtime"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/errors"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
)

// RealtimeHandler upgrades HTTP connections into authenticated WebSocket streams.
type RealtimeHandler struct {
	hub            *realtime.Hub
	jwt            *iauth.JWTService
	catalog        *i18n.Catalog
	languages      middleware.LanguageLookup
	allowedStreams map[string]struct{}
}

// NewRealtimeHandler constructs a realtime handler restricted to streams. If no
// streams are provided, only the notification stream is accepted.
func NewRealtimeHandler(hub *realtime.Hub, jwt *iauth.JWTService, catalog *i18n.Catalog, languages middleware.LanguageLookup, streams ...string) *RealtimeHandler {
	if len(streams) == 0 {
		streams = []string{realtime.StreamNotifications}
	}
	allowed := make(map[string]struct{}, len(streams))
	for _, stream := range streams {
		if stream = normalizeStream(stream); stream != "" {
			allowed[stream] = struct{}{}
		}
	}

	return &RealtimeHandler{
		hub:            hub,
		jwt:            jwt,
		catalog:        catalog,
		languages:      languages,
		allowedStreams: allowed,
	}
}

// Stream authenticates the caller and hands the connection to the hub. Browsers
// cannot set headers on WebSocket upgrades, so the token may also arrive in the
// "token" query parameter. Payloads are rendered in the locale resolved for the
// upgrade request; clients can switch it later with a "locale" control message.
// GET /api/notifications/stream
func (h *RealtimeHandler) Stream(c *gin.Context) {
	if h.jwt == nil || h.hub == nil {
		response.Error(c, errors.ErrNotFound)
		return
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		token, _ = middleware.BearerToken(c.GetHeader("Authorization"))
	}
	if token == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	claims, err := h.jwt.ValidateAccessToken(token)
	if err != nil || strings.TrimSpace(claims.UserID) == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}
	middleware.SetClaims(c, claims)

	streams := gatherStreams(c)
	if len(streams) == 0 {
		streams = []string{realtime.StreamNotifications}
	}
	for _, stream := range streams {
		if _, ok := h.allowedStreams[stream]; !ok {
			response.Error(c, errors.ErrNotFound)
			return
		}
	}

	locale := middleware.ResolveLocale(c, h.catalog, h.languages)
	h.hub.Serve(claims.UserID, locale.Code(), streams, h.allowedStreams, c.Writer, c.Request)
}

func gatherStreams(c *gin.Context) []string {
	var streams []string
	seen := make(map[string]struct{})
	add := func(value string) {
		value = normalizeStream(value)
		if value == "" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		streams = append(streams, value)
	}

	add(c.Param("stream"))
	for _, queryStream := range c.QueryArray("stream") {
		add(queryStream)
	}
	if raw := c.Query("streams"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			add(part)
		}
	}
	return streams
}

func normalizeStream(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
