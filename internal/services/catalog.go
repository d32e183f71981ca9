package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"artisan_market/internal/apperr"
	"artisan_market/internal/middleware"
	"artisan_market/internal/models"
	"artisan_market/internal/repository"
	"artisan_market/internal/storage"
)

const productImageFolder = "products"

// PriceRange bounds the listing price of a category. Max is nil when the
// category has no upper bound.
type PriceRange struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

func bounded(lo, hi int64) PriceRange {
	m := decimal.NewFromInt(hi)
	return PriceRange{Min: decimal.NewFromInt(lo), Max: &m}
}

var priceRanges = map[models.Category]PriceRange{
	models.CategorySaree:     bounded(1000, 8000),
	models.CategoryArtifacts: bounded(200, 5000),
	models.CategoryLifestyle: bounded(10, 1000),
}

// PriceRangeFor returns the allowed price range of c. Categories without a
// listed range accept anything from 1 up.
func PriceRangeFor(c models.Category) PriceRange {
	if r, ok := priceRanges[c]; ok {
		return r
	}
	return PriceRange{Min: decimal.NewFromInt(1)}
}

// CheckPrice reports a validation error citing the bounds when price is
// outside the range of c.
func CheckPrice(c models.Category, price decimal.Decimal) error {
	r := PriceRangeFor(c)
	if r.Max == nil {
		if price.LessThan(r.Min) {
			return apperr.Validation(fmt.Sprintf("The price of ₹%s is below the minimum of ₹%s for the %q category.",
				price.StringFixed(2), r.Min, c))
		}
		return nil
	}
	if price.LessThan(r.Min) || price.GreaterThan(*r.Max) {
		return apperr.Validation(fmt.Sprintf("The price of ₹%s is outside the allowed range (₹%s-₹%s) for the %q category.",
			price.StringFixed(2), r.Min, *r.Max, c))
	}
	return nil
}

// NewProduct is the seller dashboard listing form.
type NewProduct struct {
	SellerID    string
	Title       string
	Description string
	Price       string
	Category    string
	Stock       string
	Image       *multipart.FileHeader
}

// ProductUpdate carries the fields a PUT may change.
type ProductUpdate struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
	ImageURL    *string          `json:"imageUrl"`
}

type CatalogService struct {
	store   repository.Store
	images  storage.ImageStore
	sellers *SellerService
	now     func() time.Time
}

func NewCatalogService(store repository.Store, images storage.ImageStore, sellers *SellerService) *CatalogService {
	return &CatalogService{store: store, images: images, sellers: sellers, now: time.Now}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return products, nil
}

// ListByCategory accepts the category name in any case.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	c, ok := models.ParseCategory(category)
	if !ok {
		return nil, apperr.NotFound("Invalid category specified.")
	}
	products, err := s.store.ListProductsByCategory(ctx, c)
	if err != nil {
		return nil, apperr.Internal(err, "Server error retrieving products.")
	}
	return products, nil
}

// Add lists a product for the caller's seller account, or for the seller
// named in the form when the caller is an admin.
func (s *CatalogService) Add(ctx context.Context, caller *middleware.Identity, in NewProduct) (*models.Product, error) {
	sellerID, err := s.resolveSeller(ctx, caller, in.SellerID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	price, perr := decimal.NewFromString(strings.TrimSpace(in.Price))
	if title == "" || in.Category == "" || perr != nil || !price.IsPositive() {
		return nil, apperr.Validation("Missing or invalid product details (Name, Price, Category).")
	}
	category, ok := models.ParseCategory(in.Category)
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("Invalid category %q.", in.Category))
	}
	if err := CheckPrice(category, price); err != nil {
		return nil, err
	}
	stock, err := parseStock(in.Stock)
	if err != nil {
		return nil, err
	}

	imageURL, err := storage.SaveImage(ctx, s.images, productImageFolder, in.Image, sellerID, s.now())
	if err != nil {
		return nil, imageError(err, "Product image is required.")
	}

	p := &models.Product{
		SellerID:    sellerID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Price:       price.Round(2),
		Category:    category,
		ImageURL:    imageURL,
		Stock:       stock,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		s.discardImage(ctx, imageURL)
		return nil, apperr.Internal(err, "Server error: Failed to add product listing.")
	}
	return p, nil
}

// Update applies a partial change. Sellers may only touch their own listings.
// Price ranges are a listing-time rule and are not re-checked here.
func (s *CatalogService) Update(ctx context.Context, caller *middleware.Identity, rawID string, in ProductUpdate) (*models.Product, error) {
	p, err := s.ownedProduct(ctx, caller, rawID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validation("Title cannot be empty.")
		}
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, apperr.Validation("Price must be greater than zero.")
		}
		p.Price = in.Price.Round(2)
	}
	if in.Category != nil {
		c, ok := models.ParseCategory(*in.Category)
		if !ok {
			return nil, apperr.Validation(fmt.Sprintf("Invalid category %q.", *in.Category))
		}
		p.Category = c
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, apperr.Validation("Stock cannot be negative.")
		}
		p.Stock = *in.Stock
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if err := s.store.SaveProduct(ctx, p); err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, caller *middleware.Identity, rawID string) error {
	p, err := s.ownedProduct(ctx, caller, rawID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteProduct(ctx, p.ID); err != nil {
		return apperr.Internal(err, msgServerError)
	}
	s.discardImage(ctx, p.ImageURL)
	return nil
}

func (s *CatalogService) ownedProduct(ctx context.Context, caller *middleware.Identity, rawID string) (*models.Product, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperr.Validation("Invalid product id.")
	}
	p, err := s.store.FindProductByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Product not found.")
	}
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	if caller.Role == models.RoleAdmin {
		return p, nil
	}
	sellerID, err := s.resolveSeller(ctx, caller, "")
	if err != nil {
		return nil, err
	}
	if p.SellerID != sellerID {
		return nil, apperr.Authorization("You can only manage your own products.")
	}
	return p, nil
}

// resolveSeller works out which seller a listing belongs to. Sellers always
// list for themselves; admins must name the seller.
func (s *CatalogService) resolveSeller(ctx context.Context, caller *middleware.Identity, formSellerID string) (uuid.UUID, error) {
	formSellerID = strings.TrimSpace(formSellerID)

	if caller.Role == models.RoleAdmin {
		id, err := uuid.Parse(formSellerID)
		if err != nil {
			return uuid.Nil, apperr.Validation("Missing or invalid sellerId is required for product creation.")
		}
		if _, err := s.store.FindSellerByID(ctx, id); errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, apperr.Validation("No seller exists with the given sellerId.")
		} else if err != nil {
			return uuid.Nil, apperr.Internal(err, msgServerError)
		}
		return id, nil
	}

	var own uuid.UUID
	if caller.SellerID != nil {
		own = *caller.SellerID
	} else {
		seller, err := s.sellers.ApplicationFor(ctx, caller.UserID, caller.Email)
		if err != nil {
			return uuid.Nil, err
		}
		own = seller.ID
	}
	if formSellerID != "" {
		id, err := uuid.Parse(formSellerID)
		if err != nil {
			return uuid.Nil, apperr.Validation("Invalid Seller ID format.")
		}
		if id != own {
			return uuid.Nil, apperr.Authorization("You can only list products for your own seller account.")
		}
	}
	return own, nil
}

func (s *CatalogService) discardImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.images.Remove(ctx, url); err != nil {
		logrus.WithError(err).WithField("url", url).Warn("could not remove image")
	}
}

// parseStock defaults to a single unit when the form leaves stock out.
func parseStock(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.Validation("Stock must be a whole number of zero or more.")
	}
	return n, nil
}

func imageError(err error, missing string) error {
	switch {
	case errors.Is(err, storage.ErrNoFile):
		return apperr.Validation(missing)
	case errors.Is(err, storage.ErrTooLarge):
		return apperr.Validation("File upload error: image exceeds the 5MB limit.")
	case errors.Is(err, storage.ErrNotAnImage):
		return apperr.Validation("Only images are allowed!")
	}
	return apperr.Internal(err, "Server failed to process upload")
}
