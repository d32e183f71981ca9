package routes

import (
	"github.com/gin-gonic/gin"

	"artisan_market/internal/models"
)

func DeliveryRoutes(api *gin.RouterGroup, h Handlers) {
	delivery := api.Group("/delivery")
	delivery.Use(h.Gate.RequireAuthWithRole(models.RoleAdmin, models.RoleDelivery))
	{
		delivery.GET("/orders/pending", h.Delivery.Pending)
		delivery.POST("/orders/:orderId/updateStatus", h.Delivery.UpdateStatus)
	}
}
