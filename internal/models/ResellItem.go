package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemSecondHand ItemType = "Second Hand"
	ItemNew        ItemType = "New"
)

func ParseItemType(s string) (ItemType, bool) {
	switch t := ItemType(s); t {
	case ItemSecondHand, ItemNew:
		return t, true
	}
	return "", false
}

// Collections a reseller can list into.
var ResellCategories = []string{"Saree Collection", "Artifacts Collection", "Lifestyle Picks"}

func ValidResellCategory(s string) bool {
	for _, c := range ResellCategories {
		if c == s {
			return true
		}
	}
	return false
}

type ResellItem struct {
	Base
	ResellerID  uuid.UUID       `json:"resellerId" gorm:"type:uuid;not null;index"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Category    string          `json:"category" gorm:"not null"`
	ItemType    ItemType        `json:"itemType" gorm:"type:varchar(16);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	ImageURL    string          `json:"imageUrl"`
}
