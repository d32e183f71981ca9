package routes

import (
	"github.com/gin-gonic/gin"
)

func AuthRoutes(api *gin.RouterGroup, h Handlers) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/seller-login", h.Auth.SellerLogin)
		auth.POST("/reseller-register", h.Auth.ResellerRegister)
		auth.POST("/reseller-login", h.Auth.ResellerLogin)
		auth.POST("/delivery-login", h.Auth.DeliveryLogin)

		auth.POST("/logout", h.Gate.RequireAuth(), h.Auth.Logout)
		auth.GET("/profile", h.Gate.RequireAuth(), h.Auth.Profile)
	}
}
