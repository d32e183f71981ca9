package repository

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"artisan_market/internal/models"
)

// memTx is the view WithTx hands to its callback. Writes go straight to the
// store and record their inverse; a failed transaction replays the inverses
// newest first, so only its own writes are undone.
type memTx struct {
	*MemoryStore
	undo []func(st *memState)
}

var _ Store = (*memTx)(nil)

func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	tx := &memTx{MemoryStore: s}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// WithTx inside a transaction joins it.
func (t *memTx) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return fn(t)
}

func (t *memTx) rollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i](&t.st)
	}
	t.undo = nil
}

func (t *memTx) onRollback(fn func(st *memState)) {
	t.undo = append(t.undo, fn)
}

func withoutID[T any](list []T, id uuid.UUID, idOf func(*T) uuid.UUID) []T {
	return slices.DeleteFunc(list, func(v T) bool { return idOf(&v) == id })
}

func userID(u *models.User) uuid.UUID         { return u.ID }
func sellerID(s *models.Seller) uuid.UUID     { return s.ID }
func productID(p *models.Product) uuid.UUID   { return p.ID }
func orderID(o *models.Order) uuid.UUID       { return o.ID }
func resellID(r *models.ResellItem) uuid.UUID { return r.ID }
func contactID(c *models.Contact) uuid.UUID   { return c.ID }

func (t *memTx) CreateUser(ctx context.Context, u *models.User) error {
	if err := t.MemoryStore.CreateUser(ctx, u); err != nil {
		return err
	}
	id := u.ID
	t.onRollback(func(st *memState) { st.users = withoutID(st.users, id, userID) })
	return nil
}

func (t *memTx) CreateSeller(ctx context.Context, seller *models.Seller) error {
	if err := t.MemoryStore.CreateSeller(ctx, seller); err != nil {
		return err
	}
	id := seller.ID
	t.onRollback(func(st *memState) { st.sellers = withoutID(st.sellers, id, sellerID) })
	return nil
}

func (t *memTx) UpdateSellerStatus(ctx context.Context, id uuid.UUID, status models.SellerStatus) error {
	prev, err := t.MemoryStore.FindSellerByID(ctx, id)
	if err != nil {
		return err
	}
	if err := t.MemoryStore.UpdateSellerStatus(ctx, id, status); err != nil {
		return err
	}
	t.onRollback(func(st *memState) {
		for i := range st.sellers {
			if st.sellers[i].ID == id {
				st.sellers[i].Status = prev.Status
			}
		}
	})
	return nil
}

func (t *memTx) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := t.MemoryStore.CreateProduct(ctx, p); err != nil {
		return err
	}
	id := p.ID
	t.onRollback(func(st *memState) { st.products = withoutID(st.products, id, productID) })
	return nil
}

func (t *memTx) CreateProducts(ctx context.Context, ps []models.Product) error {
	if err := t.MemoryStore.CreateProducts(ctx, ps); err != nil {
		return err
	}
	for _, p := range ps {
		id := p.ID
		t.onRollback(func(st *memState) { st.products = withoutID(st.products, id, productID) })
	}
	return nil
}

func (t *memTx) SaveProduct(ctx context.Context, p *models.Product) error {
	prev, err := t.MemoryStore.FindProductByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if err := t.MemoryStore.SaveProduct(ctx, p); err != nil {
		return err
	}
	t.onRollback(func(st *memState) {
		for i := range st.products {
			if st.products[i].ID == prev.ID {
				st.products[i] = *prev
			}
		}
	})
	return nil
}

func (t *memTx) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	t.mu.RLock()
	idx := slices.IndexFunc(t.st.products, func(p models.Product) bool { return p.ID == id })
	var prev models.Product
	if idx >= 0 {
		prev = t.st.products[idx]
	}
	t.mu.RUnlock()

	if err := t.MemoryStore.DeleteProduct(ctx, id); err != nil {
		return err
	}
	t.onRollback(func(st *memState) {
		st.products = slices.Insert(st.products, min(idx, len(st.products)), prev)
	})
	return nil
}

func (t *memTx) CreateOrder(ctx context.Context, o *models.Order) error {
	if err := t.MemoryStore.CreateOrder(ctx, o); err != nil {
		return err
	}
	id := o.ID
	t.onRollback(func(st *memState) { st.orders = withoutID(st.orders, id, orderID) })
	return nil
}

func (t *memTx) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	prev, err := t.MemoryStore.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := t.MemoryStore.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	t.onRollback(func(st *memState) {
		for i := range st.orders {
			if st.orders[i].ID == id {
				st.orders[i].Status = prev.Status
			}
		}
	})
	return out, nil
}

func (t *memTx) CreateResellItem(ctx context.Context, item *models.ResellItem) error {
	if err := t.MemoryStore.CreateResellItem(ctx, item); err != nil {
		return err
	}
	id := item.ID
	t.onRollback(func(st *memState) { st.resell = withoutID(st.resell, id, resellID) })
	return nil
}

func (t *memTx) CreateContact(ctx context.Context, c *models.Contact) error {
	if err := t.MemoryStore.CreateContact(ctx, c); err != nil {
		return err
	}
	id := c.ID
	t.onRollback(func(st *memState) { st.contacts = withoutID(st.contacts, id, contactID) })
	return nil
}
