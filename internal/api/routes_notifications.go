package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/handlers"
	"github.com/stanielhristov/medical-reservation-sub004/internal/middleware"
	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
)

func registerNotificationRoutes(api *gin.RouterGroup, handler *handlers.NotificationHandler) {
	group := api.Group("/notifications")
	{
		group.GET("", handler.List)
		group.GET("/counts", handler.Counts)
		group.POST("/read-all", handler.MarkAllRead)

		group.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleDoctor), handler.Create)
		group.POST("/:id/read", handler.MarkRead)
		group.POST("/:id/unread", handler.MarkUnread)
		group.DELETE("/:id", handler.Delete)
	}
}
