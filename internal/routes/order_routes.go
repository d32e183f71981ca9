package routes

import (
	"github.com/gin-gonic/gin"

	"artisan_market/internal/middleware"
	"artisan_market/internal/models"
)

func OrderRoutes(api *gin.RouterGroup, h Handlers) {
	orders := api.Group("/orders")
	orders.Use(h.Gate.RequireAuth())
	{
		orders.POST("", middleware.RequireRole(models.RoleUser), h.Order.Create)
		orders.GET("/my", middleware.RequireRole(models.RoleUser), h.Order.Mine)
		orders.GET("", middleware.RequireRole(models.RoleSeller, models.RoleAdmin), h.Order.All)
		orders.PUT("/:id/status", middleware.RequireRole(models.RoleAdmin, models.RoleDelivery), h.Order.UpdateStatus)
	}
}
