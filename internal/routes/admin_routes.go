package routes

import (
	"github.com/gin-gonic/gin"

	"artisan_market/internal/models"
)

func AdminRoutes(api *gin.RouterGroup, h Handlers) {
	admin := api.Group("/admin")
	admin.Use(h.Gate.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.GET("/sellers", h.Admin.ListSellers)
		admin.PATCH("/sellers/:id/status", h.Admin.ReviewSeller)
		admin.POST("/staff", h.Admin.CreateStaff)
	}
}
