package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"artisan_market/internal/models"
)

// MemoryStore keeps records in insertion order. Unique constraints mirror
// the gorm tags: user email, seller email and seller user id.
type MemoryStore struct {
	mu  sync.RWMutex
	st  memState
	now func() time.Time
}

type memState struct {
	users    []models.User
	sellers  []models.Seller
	products []models.Product
	orders   []models.Order
	resell   []models.ResellItem
	contacts []models.Contact
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	o.Location = append([]byte(nil), o.Location...)
	return o
}

func (s *MemoryStore) stamp(b *models.Base) {
	b.AssignID()
	now := s.now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.st.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicate
		}
	}
	s.stamp(&u.Base)
	s.st.users = append(s.st.users, *u)
	return nil
}

func (s *MemoryStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.st.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.st.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateSeller(ctx context.Context, seller *models.Seller) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.st.sellers {
		if strings.EqualFold(existing.Email, seller.Email) ||
			(seller.UserID != uuid.Nil && existing.UserID == seller.UserID) {
			return ErrDuplicate
		}
	}
	s.stamp(&seller.Base)
	if seller.Status == "" {
		seller.Status = models.SellerPending
	}
	s.st.sellers = append(s.st.sellers, *seller)
	return nil
}

func (s *MemoryStore) findSeller(match func(models.Seller) bool) (*models.Seller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, seller := range s.st.sellers {
		if match(seller) {
			return &seller, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	return s.findSeller(func(seller models.Seller) bool { return seller.ID == id })
}

func (s *MemoryStore) FindSellerByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	return s.findSeller(func(seller models.Seller) bool { return seller.UserID == userID })
}

func (s *MemoryStore) FindSellerByEmail(ctx context.Context, email string) (*models.Seller, error) {
	return s.findSeller(func(seller models.Seller) bool { return strings.EqualFold(seller.Email, email) })
}

func (s *MemoryStore) ListSellers(ctx context.Context, status models.SellerStatus) ([]models.Seller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Seller{}
	for i := len(s.st.sellers) - 1; i >= 0; i-- {
		if status == "" || s.st.sellers[i].Status == status {
			out = append(out, s.st.sellers[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateSellerStatus(ctx context.Context, id uuid.UUID, status models.SellerStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.sellers {
		if s.st.sellers[i].ID == id {
			s.st.sellers[i].Status = status
			s.st.sellers[i].UpdatedAt = s.now()
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) CreateProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&p.Base)
	s.st.products = append(s.st.products, *p)
	return nil
}

func (s *MemoryStore) CreateProducts(ctx context.Context, ps []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range ps {
		s.stamp(&ps[i].Base)
		s.st.products = append(s.st.products, ps[i])
	}
	return nil
}

func (s *MemoryStore) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.st.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.listProducts(func(models.Product) bool { return true }), nil
}

func (s *MemoryStore) ListProductsByCategory(ctx context.Context, c models.Category) ([]models.Product, error) {
	return s.listProducts(func(p models.Product) bool { return p.Category == c }), nil
}

func (s *MemoryStore) listProducts(keep func(models.Product) bool) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Product{}
	for i := len(s.st.products) - 1; i >= 0; i-- {
		if keep(s.st.products[i]) {
			out = append(out, s.st.products[i])
		}
	}
	return out
}

func (s *MemoryStore) SaveProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.products {
		if s.st.products[i].ID == p.ID {
			p.UpdatedAt = s.now()
			s.st.products[i] = *p
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.products {
		if s.st.products[i].ID == id {
			s.st.products = append(s.st.products[:i], s.st.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) CreateOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&o.Base)
	if o.Status == "" {
		o.Status = models.OrderPending
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	s.st.orders = append(s.st.orders, copyOrder(*o))
	return nil
}

func (s *MemoryStore) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.st.orders {
		if o.ID == id {
			out := copyOrder(o)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.listOrders(func(models.Order) bool { return true }, true), nil
}

func (s *MemoryStore) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.listOrders(func(o models.Order) bool { return o.UserID == userID }, true), nil
}

func (s *MemoryStore) ListOrdersByStatus(ctx context.Context, statuses ...models.OrderStatus) ([]models.Order, error) {
	return s.listOrders(func(o models.Order) bool {
		for _, st := range statuses {
			if o.Status == st {
				return true
			}
		}
		return false
	}, false), nil
}

func (s *MemoryStore) listOrders(keep func(models.Order) bool, newestFirst bool) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Order{}
	n := len(s.st.orders)
	for i := 0; i < n; i++ {
		o := s.st.orders[i]
		if newestFirst {
			o = s.st.orders[n-1-i]
		}
		if keep(o) {
			out = append(out, copyOrder(o))
		}
	}
	return out
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.orders {
		if s.st.orders[i].ID == id {
			s.st.orders[i].Status = status
			s.st.orders[i].UpdatedAt = s.now()
			out := copyOrder(s.st.orders[i])
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateResellItem(ctx context.Context, item *models.ResellItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&item.Base)
	s.st.resell = append(s.st.resell, *item)
	return nil
}

func (s *MemoryStore) ListResellItems(ctx context.Context) ([]models.ResellItem, error) {
	return s.listResell(func(models.ResellItem) bool { return true }), nil
}

func (s *MemoryStore) ListResellItemsByReseller(ctx context.Context, resellerID uuid.UUID) ([]models.ResellItem, error) {
	return s.listResell(func(item models.ResellItem) bool { return item.ResellerID == resellerID }), nil
}

func (s *MemoryStore) listResell(keep func(models.ResellItem) bool) []models.ResellItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.ResellItem{}
	for i := len(s.st.resell) - 1; i >= 0; i-- {
		if keep(s.st.resell[i]) {
			out = append(out, s.st.resell[i])
		}
	}
	return out
}

func (s *MemoryStore) CreateContact(ctx context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&c.Base)
	s.st.contacts = append(s.st.contacts, *c)
	return nil
}

func (s *MemoryStore) ListContacts(ctx context.Context) ([]models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Contact, 0, len(s.st.contacts))
	for i := len(s.st.contacts) - 1; i >= 0; i-- {
		out = append(out, s.st.contacts[i])
	}
	return out, nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*GormStore)(nil)
)
