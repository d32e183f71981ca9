package routes

import (
	"github.com/gin-gonic/gin"

	"artisan_market/internal/models"
)

func ResellRoutes(api *gin.RouterGroup, h Handlers) {
	resellerOnly := h.Gate.RequireAuthWithRole(models.RoleReseller)

	resell := api.Group("/resell")
	{
		resell.GET("", h.Resell.List)
		resell.GET("/my", resellerOnly, h.Resell.Mine)
		resell.POST("/add", resellerOnly, h.Resell.Add)
	}
}
