package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_market/internal/apperr"
	"artisan_market/internal/middleware"
	"artisan_market/internal/services"
)

type AuthController struct {
	auth *services.AuthService
	gate *middleware.Auth
}

func NewAuthController(auth *services.AuthService, gate *middleware.Auth) *AuthController {
	return &AuthController{auth: auth, gate: gate}
}

// Register handles POST /api/auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var in services.Registration
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Binding(err, "Missing fields"))
		return
	}
	sess, err := ac.auth.Register(c.Request.Context(), in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Login handles POST /api/auth/login (customer portal).
func (ac *AuthController) Login(c *gin.Context) {
	ac.login(c, ac.auth.Login)
}

// SellerLogin handles POST /api/auth/seller-login.
func (ac *AuthController) SellerLogin(c *gin.Context) {
	ac.login(c, ac.auth.SellerLogin)
}

// DeliveryLogin handles POST /api/auth/delivery-login.
func (ac *AuthController) DeliveryLogin(c *gin.Context) {
	ac.login(c, ac.auth.DeliveryLogin)
}

func (ac *AuthController) login(c *gin.Context, flow func(ctx context.Context, in services.Credentials) (*services.Session, error)) {
	var in services.Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Binding(err, "Please provide email and password"))
		return
	}
	sess, err := flow(c.Request.Context(), in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ResellerRegister handles POST /api/auth/reseller-register.
func (ac *AuthController) ResellerRegister(c *gin.Context) {
	var in services.Registration
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.RespondEnvelope(c, apperr.Binding(err, "Missing fields"))
		return
	}
	if err := ac.auth.RegisterReseller(c.Request.Context(), in); err != nil {
		apperr.RespondEnvelope(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Reseller created successfully!"})
}

// ResellerLogin handles POST /api/auth/reseller-login.
func (ac *AuthController) ResellerLogin(c *gin.Context) {
	var in services.Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.RespondEnvelope(c, apperr.Binding(err, "Please provide email and password"))
		return
	}
	sess, err := ac.auth.ResellerLogin(c.Request.Context(), in)
	if err != nil {
		apperr.RespondEnvelope(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": sess.Token, "user": sess.User})
}

// Logout revokes the presented token until it expires.
func (ac *AuthController) Logout(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	if err := ac.gate.Revoke(c.Request.Context(), id); err != nil {
		apperr.Respond(c, apperr.Internal(err, "Server error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile returns the account behind the bearer token.
func (ac *AuthController) Profile(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	user, err := ac.auth.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
