package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices go out as JSON numbers, the storefront scripts do arithmetic on them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base replaces gorm.Model for records addressed by opaque ids.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssignID gives the record an id if it does not have one yet.
func (b *Base) AssignID() {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	b.AssignID()
	return nil
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Seller{},
		&Product{},
		&Order{},
		&OrderItem{},
		&ResellItem{},
		&Contact{},
	}
}
