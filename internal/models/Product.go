package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategorySaree     Category = "saree"
	CategoryArtifacts Category = "artifacts"
	CategoryLifestyle Category = "lifestyle"
	CategoryOther     Category = "other"
)

func Categories() []Category {
	return []Category{CategorySaree, CategoryArtifacts, CategoryLifestyle, CategoryOther}
}

// ParseCategory is case-insensitive.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Categories() {
		if c == valid {
			return c, true
		}
	}
	return "", false
}

type Product struct {
	Base
	SellerID    uuid.UUID       `json:"sellerId" gorm:"type:uuid;not null;index"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Category    Category        `json:"category" gorm:"type:varchar(16);not null;index"`
	ImageURL    string          `json:"imageUrl"`
	Stock       int             `json:"stock" gorm:"default:0"`
}
