package routes

import (
	"github.com/gin-gonic/gin"

	"artisan_market/internal/models"
)

func SellerRoutes(api *gin.RouterGroup, h Handlers) {
	seller := api.Group("/seller")
	{
		seller.POST("/register", h.Seller.Register)
		seller.GET("/application", h.Gate.RequireAuthWithRole(models.RoleSeller, models.RoleAdmin), h.Seller.Application)
	}
}
