package routes

import (
	"github.com/gin-gonic/gin"

	"artisan_market/internal/models"
)

// ProductRoutes mounts the shop listing under /products and the seller
// dashboard endpoints under /product.
func ProductRoutes(api *gin.RouterGroup, h Handlers) {
	sellerOrAdmin := h.Gate.RequireAuthWithRole(models.RoleSeller, models.RoleAdmin)

	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.PUT("/:id", sellerOrAdmin, h.Product.Update)
		products.DELETE("/:id", sellerOrAdmin, h.Product.Delete)
	}

	product := api.Group("/product")
	{
		product.POST("/add", sellerOrAdmin, h.Product.Add)
		product.POST("/import", sellerOrAdmin, h.Product.Import)
		product.GET("/:category", h.Product.ByCategory)
	}
}
