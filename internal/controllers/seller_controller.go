package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_market/internal/apperr"
	"artisan_market/internal/middleware"
	"artisan_market/internal/services"
)

type SellerController struct {
	auth    *services.AuthService
	sellers *services.SellerService
}

func NewSellerController(auth *services.AuthService, sellers *services.SellerService) *SellerController {
	return &SellerController{auth: auth, sellers: sellers}
}

// Register handles POST /api/seller/register. The new seller is logged in
// straight away with a pending application.
func (sc *SellerController) Register(c *gin.Context) {
	var in services.SellerRegistration
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Binding(err, "Missing required fields: Name, Email, Business Name, or Password."))
		return
	}
	sess, err := sc.auth.RegisterSeller(c.Request.Context(), in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Seller application submitted successfully! Redirecting to dashboard for review...",
		"token":   sess.Token,
		"user":    sess.User,
	})
}

// Application returns the caller's seller application and its review status.
func (sc *SellerController) Application(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	seller, err := sc.sellers.ApplicationFor(c.Request.Context(), id.UserID, id.Email)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seller": seller})
}
