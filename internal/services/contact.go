package services

import (
	"context"
	"strings"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
	"artisan_market/internal/repository"
)

const MsgContactFields = "Please provide name, email and message."

type ContactService struct {
	store repository.Contacts
}

func NewContactService(store repository.Contacts) *ContactService {
	return &ContactService{store: store}
}

func (s *ContactService) Submit(ctx context.Context, in models.Contact) (*models.Contact, error) {
	c := &models.Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   normalizeEmail(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Message: strings.TrimSpace(in.Message),
	}
	if err := validate(c, MsgContactFields); err != nil {
		return nil, err
	}
	if err := s.store.CreateContact(ctx, c); err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return c, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	msgs, err := s.store.ListContacts(ctx)
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return msgs, nil
}
