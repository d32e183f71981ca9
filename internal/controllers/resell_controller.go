package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_market/internal/apperr"
	"artisan_market/internal/middleware"
	"artisan_market/internal/services"
)

type ResellController struct {
	resell *services.ResellService
}

func NewResellController(resell *services.ResellService) *ResellController {
	return &ResellController{resell: resell}
}

// Add handles POST /api/resell/add (multipart, image in field "image").
func (rc *ResellController) Add(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	image, err := formFile(c, "image")
	if err != nil {
		apperr.RespondEnvelope(c, apperr.Validation("File upload error: "+err.Error()))
		return
	}
	item, err := rc.resell.Add(c.Request.Context(), id.UserID, services.NewResellItem{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		ItemType:    c.PostForm("itemType"),
		Price:       c.PostForm("price"),
		Image:       image,
	})
	if err != nil {
		apperr.RespondEnvelope(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item uploaded successfully!", "data": item})
}

func (rc *ResellController) List(c *gin.Context) {
	items, err := rc.resell.List(c.Request.Context())
	if err != nil {
		apperr.RespondEnvelope(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

func (rc *ResellController) Mine(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	items, err := rc.resell.ListMine(c.Request.Context(), id.UserID)
	if err != nil {
		apperr.RespondEnvelope(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}
