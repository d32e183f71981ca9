package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
	"artisan_market/internal/services"
)

// AdminController backs the admin panel: seller application review and
// staff accounts for delivery riders.
type AdminController struct {
	auth    *services.AuthService
	sellers *services.SellerService
}

func NewAdminController(auth *services.AuthService, sellers *services.SellerService) *AdminController {
	return &AdminController{auth: auth, sellers: sellers}
}

// ListSellers handles GET /api/admin/sellers?status=pending.
func (ac *AdminController) ListSellers(c *gin.Context) {
	sellers, err := ac.sellers.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sellers": sellers})
}

// ReviewSeller handles PATCH /api/admin/sellers/:id/status.
func (ac *AdminController) ReviewSeller(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, apperr.Binding(err, "status is required"))
		return
	}
	seller, err := ac.sellers.ReviewByID(c.Request.Context(), c.Param("id"), models.SellerStatus(body.Status))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Seller application " + string(seller.Status), "seller": seller})
}

// CreateStaff handles POST /api/admin/staff. Role defaults to delivery.
func (ac *AdminController) CreateStaff(c *gin.Context) {
	var body struct {
		services.Registration
		Role models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, apperr.Binding(err, "Missing fields"))
		return
	}
	if body.Role == "" {
		body.Role = models.RoleDelivery
	}
	user, err := ac.auth.CreateStaff(c.Request.Context(), body.Registration, body.Role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Staff account created", "user": gin.H{
		"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role,
	}})
}
