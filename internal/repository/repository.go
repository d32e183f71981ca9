// Package repository is the credential and catalog store. Callers depend on
// the Store interface; GormStore backs it with Postgres and MemoryStore keeps
// everything in process for local runs and tests.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"artisan_market/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Users interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type Sellers interface {
	CreateSeller(ctx context.Context, s *models.Seller) error
	FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
	FindSellerByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error)
	FindSellerByEmail(ctx context.Context, email string) (*models.Seller, error)
	UpdateSellerStatus(ctx context.Context, id uuid.UUID, status models.SellerStatus) error
	// ListSellers returns every application when status is empty.
	ListSellers(ctx context.Context, status models.SellerStatus) ([]models.Seller, error)
}

type Products interface {
	CreateProduct(ctx context.Context, p *models.Product) error
	CreateProducts(ctx context.Context, ps []models.Product) error
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, c models.Category) ([]models.Product, error)
	SaveProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type Orders interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListOrdersByStatus(ctx context.Context, statuses ...models.OrderStatus) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type ResellItems interface {
	CreateResellItem(ctx context.Context, item *models.ResellItem) error
	ListResellItems(ctx context.Context) ([]models.ResellItem, error)
	ListResellItemsByReseller(ctx context.Context, resellerID uuid.UUID) ([]models.ResellItem, error)
}

type Contacts interface {
	CreateContact(ctx context.Context, c *models.Contact) error
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

// Store is everything the API persists. Lists are newest first, except
// ListOrdersByStatus which is oldest first (delivery works the queue in order).
type Store interface {
	Users
	Sellers
	Products
	Orders
	ResellItems
	Contacts

	// WithTx runs fn against a transactional view of the store. If fn
	// returns an error nothing it wrote is kept.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
