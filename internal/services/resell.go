package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
	"artisan_market/internal/repository"
	"artisan_market/internal/storage"
)

const resellImageFolder = "resell"

type NewResellItem struct {
	Name        string
	Description string
	Category    string
	ItemType    string
	Price       string
	Image       *multipart.FileHeader
}

type ResellService struct {
	store  repository.Store
	images storage.ImageStore
	now    func() time.Time
}

func NewResellService(store repository.Store, images storage.ImageStore) *ResellService {
	return &ResellService{store: store, images: images, now: time.Now}
}

func (s *ResellService) Add(ctx context.Context, resellerID uuid.UUID, in NewResellItem) (*models.ResellItem, error) {
	if in.Image == nil {
		return nil, apperr.Validation("No file received")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("Item name is required.")
	}
	category, ok := resellCategory(in.Category)
	if !ok {
		return nil, apperr.Validation("Category must be one of: " + strings.Join(models.ResellCategories, ", "))
	}
	itemType, ok := models.ParseItemType(strings.TrimSpace(in.ItemType))
	if !ok {
		return nil, apperr.Validation(`Item type must be "Second Hand" or "New".`)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || !price.IsPositive() {
		return nil, apperr.Validation("Price must be a positive number.")
	}

	url, err := storage.SaveImage(ctx, s.images, resellImageFolder, in.Image, resellerID, s.now())
	if err != nil {
		return nil, imageError(err, "No file received")
	}
	item := &models.ResellItem{
		ResellerID:  resellerID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		ItemType:    itemType,
		Price:       price.Round(2),
		ImageURL:    url,
	}
	if err := s.store.CreateResellItem(ctx, item); err != nil {
		if rmErr := s.images.Remove(ctx, url); rmErr != nil {
			logrus.WithError(rmErr).WithField("url", url).Warn("could not remove image")
		}
		return nil, apperr.Internal(err, "Server failed to process upload")
	}
	return item, nil
}

func (s *ResellService) List(ctx context.Context) ([]models.ResellItem, error) {
	items, err := s.store.ListResellItems(ctx)
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return items, nil
}

func (s *ResellService) ListMine(ctx context.Context, resellerID uuid.UUID) ([]models.ResellItem, error) {
	items, err := s.store.ListResellItemsByReseller(ctx, resellerID)
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return items, nil
}

// resellCategory matches a collection name ignoring case and returns its
// canonical spelling.
func resellCategory(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range models.ResellCategories {
		if strings.EqualFold(c, s) {
			return c, true
		}
	}
	return "", false
}
