package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/handlers"
	"github.com/stanielhristov/medical-reservation-sub004/internal/middleware"
	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
)

func registerUserRoutes(api *gin.RouterGroup, handler *handlers.UserHandler) {
	users := api.Group("/admin/users")
	users.Use(middleware.RequireRole(models.RoleAdmin))
	{
		users.GET("", handler.List)
		users.POST("", handler.Create)
		users.GET("/:id", handler.Get)
	}
}
