package routes

import (
	"github.com/gin-gonic/gin"

	"artisan_market/internal/models"
)

func ContactRoutes(api *gin.RouterGroup, h Handlers) {
	contact := api.Group("/contact")
	{
		contact.POST("", h.Contact.Submit)
		contact.GET("", h.Gate.RequireAuthWithRole(models.RoleAdmin), h.Contact.List)
	}
}
