package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/handlers"
	"github.com/stanielhristov/medical-reservation-sub004/internal/middleware"
	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
)

func registerSecurityRoutes(api *gin.RouterGroup, handler *handlers.SecurityHandler) {
	sec := api.Group("/admin/security")
	sec.Use(middleware.RequireRole(models.RoleAdmin))
	{
		sec.GET("/audit", handler.Audit)
	}
}
