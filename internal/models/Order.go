package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled}
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range OrderStatuses() {
		if st == valid {
			return st, true
		}
	}
	return "", false
}

type OrderItem struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `json:"-" gorm:"type:uuid;index"`
	ProductID uuid.UUID       `json:"product" gorm:"type:uuid"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(12,2)"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Order struct {
	Base
	UserID  uuid.UUID       `json:"user" gorm:"type:uuid;not null;index"`
	Items   []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Total   decimal.Decimal `json:"total" gorm:"type:numeric(12,2)"`
	Address string          `json:"address"`
	Status  OrderStatus     `json:"status" gorm:"type:varchar(16);not null;default:pending;index"`

	// Drop-off point for the delivery panel, WKB encoded (SRID 4326).
	Location []byte `json:"-" gorm:"type:bytea"`
}
