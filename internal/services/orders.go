package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
	"artisan_market/internal/repository"
)

// OrderItemInput is one cart line. Price is what the cart showed; when set
// it must equal the listed price.
type OrderItemInput struct {
	Product string          `json:"product"`
	Qty     int             `json:"qty"`
	Price   decimal.Decimal `json:"price"`
}

type NewOrder struct {
	Items    []OrderItemInput `json:"items"`
	Total    *decimal.Decimal `json:"total"`
	Address  string           `json:"address"`
	Location json.RawMessage  `json:"location"`
}

// OrderView is an order with its drop-off point rendered as GeoJSON.
type OrderView struct {
	models.Order
	Location json.RawMessage `json:"location,omitempty"`
}

// deliveryStatuses maps the delivery panel vocabulary onto order statuses.
var deliveryStatuses = map[string]models.OrderStatus{
	"pending":   models.OrderPending,
	"accepted":  models.OrderConfirmed,
	"confirmed": models.OrderConfirmed,
	"shipped":   models.OrderShipped,
	"delivered": models.OrderDelivered,
	"cancelled": models.OrderCancelled,
}

// openStatuses are the orders the delivery panel still has to work.
var openStatuses = []models.OrderStatus{models.OrderPending, models.OrderConfirmed, models.OrderShipped}

type OrderService struct {
	store repository.Store
}

func NewOrderService(store repository.Store) *OrderService {
	return &OrderService{store: store}
}

// Create places an order for userID at the listed product prices. A missing
// total is computed from the items; a given total must match them.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, in NewOrder) (*OrderView, error) {
	if len(in.Items) == 0 {
		return nil, apperr.Validation("An order needs at least one item.")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, apperr.Validation("A delivery address is required.")
	}

	order := &models.Order{UserID: userID, Address: address, Status: models.OrderPending}
	sum := decimal.Zero
	for _, it := range in.Items {
		pid, err := uuid.Parse(it.Product)
		if err != nil {
			return nil, apperr.Validation("Invalid product id " + it.Product)
		}
		if it.Qty < 1 {
			return nil, apperr.Validation("Each item needs a quantity of at least 1.")
		}
		product, err := s.store.FindProductByID(ctx, pid)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Validation("Unknown product " + it.Product)
		} else if err != nil {
			return nil, apperr.Internal(err, msgServerError)
		}
		// Items are charged at the listed price. A cart price that no longer
		// matches the listing is refused so the customer can review it.
		price := product.Price.Round(2)
		if !it.Price.IsZero() && !it.Price.Round(2).Equal(price) {
			return nil, apperr.Validation(fmt.Sprintf("The price of %q is now ₹%s. Please review your cart.", product.Title, price.StringFixed(2)))
		}
		order.Items = append(order.Items, models.OrderItem{ProductID: pid, Qty: it.Qty, Price: price})
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	order.Total = sum
	if in.Total != nil {
		if !in.Total.Round(2).Equal(sum) {
			return nil, apperr.Validation("Order total does not match the items.")
		}
	}

	if len(in.Location) > 0 && string(in.Location) != "null" {
		wkbPoint, err := encodeDropOff(in.Location)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		order.Location = wkbPoint
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	logrus.WithFields(logrus.Fields{"order_id": order.ID, "user_id": userID, "total": order.Total}).Info("order placed")
	return view(order), nil
}

func (s *OrderService) Mine(ctx context.Context, userID uuid.UUID) ([]OrderView, error) {
	orders, err := s.store.ListOrdersByUser(ctx, userID)
	return views(orders, err)
}

func (s *OrderService) All(ctx context.Context) ([]OrderView, error) {
	orders, err := s.store.ListOrders(ctx)
	return views(orders, err)
}

// Open lists orders still awaiting delivery, oldest first.
func (s *OrderService) Open(ctx context.Context) ([]OrderView, error) {
	orders, err := s.store.ListOrdersByStatus(ctx, openStatuses...)
	return views(orders, err)
}

// SetStatus sets any of the order statuses regardless of the current one.
func (s *OrderService) SetStatus(ctx context.Context, rawID, status string) (*OrderView, error) {
	st, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, apperr.Validation("Invalid status. Must be one of: pending, confirmed, shipped, delivered, cancelled.")
	}
	return s.update(ctx, rawID, st)
}

// SetDeliveryStatus is SetStatus in the delivery panel vocabulary, where
// "accepted" means confirmed.
func (s *OrderService) SetDeliveryStatus(ctx context.Context, rawID, status string) (*OrderView, error) {
	st, ok := deliveryStatuses[strings.ToLower(strings.TrimSpace(status))]
	if !ok {
		return nil, apperr.Validation("Invalid new status.")
	}
	return s.update(ctx, rawID, st)
}

func (s *OrderService) update(ctx context.Context, rawID string, st models.OrderStatus) (*OrderView, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperr.Validation("Invalid order id.")
	}
	order, err := s.store.UpdateOrderStatus(ctx, id, st)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Order not found.")
	}
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return view(order), nil
}

func view(o *models.Order) *OrderView {
	v := &OrderView{Order: *o}
	loc, err := decodeDropOff(o.Location)
	if err != nil {
		logrus.WithError(err).WithField("order_id", o.ID).Warn("stored drop-off point is unreadable")
	}
	v.Location = loc
	return v
}

func views(orders []models.Order, err error) ([]OrderView, error) {
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	out := make([]OrderView, len(orders))
	for i := range orders {
		out[i] = *view(&orders[i])
	}
	return out, nil
}
