package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/handlers"
)

func registerProfileRoutes(api *gin.RouterGroup, handler *handlers.ProfileHandler) {
	profile := api.Group("/profile")
	{
		profile.GET("", handler.Get)
		profile.GET("/preferences", handler.GetPreferences)
		profile.PUT("/preferences", handler.UpdatePreferences)
	}
}
