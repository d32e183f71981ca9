package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
	"artisan_market/internal/services"
)

type ContactController struct {
	contacts *services.ContactService
}

func NewContactController(contacts *services.ContactService) *ContactController {
	return &ContactController{contacts: contacts}
}

func (cc *ContactController) Submit(c *gin.Context) {
	var in models.Contact
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Binding(err, services.MsgContactFields))
		return
	}
	if _, err := cc.contacts.Submit(c.Request.Context(), in); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Received"})
}

func (cc *ContactController) List(c *gin.Context) {
	msgs, err := cc.contacts.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
