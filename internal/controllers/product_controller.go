package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_market/internal/apperr"
	"artisan_market/internal/middleware"
	"artisan_market/internal/services"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// List handles GET /api/products, newest first.
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.catalog.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ByCategory handles GET /api/product/:category.
func (pc *ProductController) ByCategory(c *gin.Context) {
	products, err := pc.catalog.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Add handles the multipart listing form of the seller dashboard.
func (pc *ProductController) Add(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	image, err := formFile(c, "image", "productImage")
	if err != nil {
		apperr.Respond(c, apperr.Validation("File upload error: "+err.Error()))
		return
	}
	in := services.NewProduct{
		SellerID:    c.PostForm("sellerId"),
		Title:       c.PostForm("productName"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Category:    c.PostForm("category"),
		Stock:       c.PostForm("stock"),
		Image:       image,
	}
	product, err := pc.catalog.Add(c.Request.Context(), id, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Product %q successfully added to the %q collection!", product.Title, product.Category),
		"product": product,
	})
}

// Import handles POST /api/product/import with an .xlsx sheet in field "file".
func (pc *ProductController) Import(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	fh, err := c.FormFile("file")
	if err != nil {
		apperr.Respond(c, apperr.Validation("Upload an .xlsx file in the \"file\" field."))
		return
	}
	f, err := fh.Open()
	if err != nil {
		apperr.Respond(c, apperr.Internal(err, "Server failed to process upload"))
		return
	}
	defer f.Close()

	report, err := pc.catalog.Import(c.Request.Context(), id, c.PostForm("sellerId"), f)
	if err != nil {
		if report != nil {
			e := apperr.From(err)
			c.AbortWithStatusJSON(e.Status(), gin.H{"message": e.Message, "errors": report.Errors})
			return
		}
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// Update handles PUT /api/products/:id.
func (pc *ProductController) Update(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	var in services.ProductUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid product update."))
		return
	}
	product, err := pc.catalog.Update(c.Request.Context(), id, c.Param("id"), in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/products/:id.
func (pc *ProductController) Delete(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	if err := pc.catalog.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// formFile returns the first upload found under names, or nil when none was sent.
func formFile(c *gin.Context, names ...string) (*multipart.FileHeader, error) {
	for _, name := range names {
		fh, err := c.FormFile(name)
		if err == nil {
			return fh, nil
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, err
		}
	}
	return nil, nil
}
