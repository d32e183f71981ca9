package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
	"artisan_market/internal/repository"
)

// SellerService reads seller applications and applies review decisions,
// either from the admin panel or from sellerctl.
type SellerService struct {
	store repository.Store
}

func NewSellerService(store repository.Store) *SellerService {
	return &SellerService{store: store}
}

// ApplicationFor returns the application of the seller account userID.
func (s *SellerService) ApplicationFor(ctx context.Context, userID uuid.UUID, email string) (*models.Seller, error) {
	seller, err := s.store.FindSellerByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		seller, err = s.store.FindSellerByEmail(ctx, email)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("No seller application found for this account.")
	}
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return seller, nil
}

// List returns applications in the given review state, or all of them when
// rawStatus is empty.
func (s *SellerService) List(ctx context.Context, rawStatus string) ([]models.Seller, error) {
	var status models.SellerStatus
	if rawStatus != "" {
		st, ok := models.ParseSellerStatus(rawStatus)
		if !ok {
			return nil, apperr.Validation("Invalid status. Must be one of: pending, active, rejected")
		}
		status = st
	}
	sellers, err := s.store.ListSellers(ctx, status)
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return sellers, nil
}

// ReviewByID is Review for callers holding the application id.
func (s *SellerService) ReviewByID(ctx context.Context, rawID string, next models.SellerStatus) (*models.Seller, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperr.Validation("Invalid seller id")
	}
	seller, err := s.store.FindSellerByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Seller application not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return s.review(ctx, seller, next)
}

// Review moves a pending application to active or rejected. Decided
// applications are final.
func (s *SellerService) Review(ctx context.Context, email string, next models.SellerStatus) (*models.Seller, error) {
	seller, err := s.store.FindSellerByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("No seller application found for " + email)
	}
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return s.review(ctx, seller, next)
}

func (s *SellerService) review(ctx context.Context, seller *models.Seller, next models.SellerStatus) (*models.Seller, error) {
	if !seller.Status.CanTransitionTo(next) {
		return nil, apperr.Validation(fmt.Sprintf("cannot move seller application from %s to %s", seller.Status, next))
	}
	if err := s.store.UpdateSellerStatus(ctx, seller.ID, next); err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	logrus.WithFields(logrus.Fields{
		"seller_id": seller.ID,
		"from":      seller.Status,
		"to":        next,
	}).Info("seller application reviewed")
	seller.Status = next
	return seller, nil
}
