package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"artisan_market/internal/models"
)

const uniqueViolation = "23505"

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// translate maps driver errors onto the package sentinels. Both pgx and
// lib/pq report unique violations, depending on DB_DRIVER.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *GormStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) CreateSeller(ctx context.Context, seller *models.Seller) error {
	return translate(s.db.WithContext(ctx).Create(seller).Error)
}

func (s *GormStore) FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := s.db.WithContext(ctx).First(&seller, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &seller, nil
}

func (s *GormStore) FindSellerByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&seller).Error; err != nil {
		return nil, translate(err)
	}
	return &seller, nil
}

func (s *GormStore) FindSellerByEmail(ctx context.Context, email string) (*models.Seller, error) {
	var seller models.Seller
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&seller).Error; err != nil {
		return nil, translate(err)
	}
	return &seller, nil
}

func (s *GormStore) ListSellers(ctx context.Context, status models.SellerStatus) ([]models.Seller, error) {
	var sellers []models.Seller
	q := s.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("date_registered desc").Find(&sellers).Error
	return sellers, translate(err)
}

func (s *GormStore) UpdateSellerStatus(ctx context.Context, id uuid.UUID, status models.SellerStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Seller{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateProduct(ctx context.Context, p *models.Product) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *GormStore) CreateProducts(ctx context.Context, ps []models.Product) error {
	if len(ps) == 0 {
		return nil
	}
	return translate(s.db.WithContext(ctx).Create(&ps).Error)
}

func (s *GormStore) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var ps []models.Product
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&ps).Error
	return ps, translate(err)
}

func (s *GormStore) ListProductsByCategory(ctx context.Context, c models.Category) ([]models.Product, error) {
	var ps []models.Product
	err := s.db.WithContext(ctx).Where("category = ?", c).Order("created_at desc").Find(&ps).Error
	return ps, translate(err)
}

func (s *GormStore) SaveProduct(ctx context.Context, p *models.Product) error {
	return translate(s.db.WithContext(ctx).Save(p).Error)
}

func (s *GormStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateOrder(ctx context.Context, o *models.Order) error {
	return translate(s.db.WithContext(ctx).Create(o).Error)
}

func (s *GormStore) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *GormStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Preload("Items").Order("created_at desc").Find(&orders).Error
	return orders, translate(err)
}

func (s *GormStore) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, translate(err)
}

func (s *GormStore) ListOrdersByStatus(ctx context.Context, statuses ...models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("status IN ?", statuses).
		Order("created_at asc").
		Find(&orders).Error
	return orders, translate(err)
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindOrderByID(ctx, id)
}

func (s *GormStore) CreateResellItem(ctx context.Context, item *models.ResellItem) error {
	return translate(s.db.WithContext(ctx).Create(item).Error)
}

func (s *GormStore) ListResellItems(ctx context.Context) ([]models.ResellItem, error) {
	var items []models.ResellItem
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&items).Error
	return items, translate(err)
}

func (s *GormStore) ListResellItemsByReseller(ctx context.Context, resellerID uuid.UUID) ([]models.ResellItem, error) {
	var items []models.ResellItem
	err := s.db.WithContext(ctx).Where("reseller_id = ?", resellerID).Order("created_at desc").Find(&items).Error
	return items, translate(err)
}

func (s *GormStore) CreateContact(ctx context.Context, c *models.Contact) error {
	return translate(s.db.WithContext(ctx).Create(c).Error)
}

func (s *GormStore) ListContacts(ctx context.Context) ([]models.Contact, error) {
	var cs []models.Contact
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&cs).Error
	return cs, translate(err)
}
