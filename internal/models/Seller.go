package models

import (
	"time"

	"github.com/google/uuid"
)

// SellerStatus is the review state of a seller application.
type SellerStatus string

const (
	SellerPending  SellerStatus = "pending"
	SellerActive   SellerStatus = "active"
	SellerRejected SellerStatus = "rejected"
)

func ParseSellerStatus(s string) (SellerStatus, bool) {
	switch st := SellerStatus(s); st {
	case SellerPending, SellerActive, SellerRejected:
		return st, true
	}
	return "", false
}

// Terminal reports whether no further review transition is possible.
func (s SellerStatus) Terminal() bool {
	return s == SellerActive || s == SellerRejected
}

// CanTransitionTo allows only pending -> active and pending -> rejected.
func (s SellerStatus) CanTransitionTo(next SellerStatus) bool {
	return s == SellerPending && next.Terminal()
}

// Seller is the onboarding application paired with a User of role seller.
type Seller struct {
	Base
	UserID         uuid.UUID    `json:"userId" gorm:"type:uuid;uniqueIndex"`
	Name           string       `json:"name" gorm:"not null"`
	Email          string       `json:"email" gorm:"uniqueIndex;not null"`
	Phone          string       `json:"phone"`
	BusinessName   string       `json:"businessName" gorm:"not null"`
	ProductsDesc   string       `json:"productsDesc"`
	Status         SellerStatus `json:"status" gorm:"type:varchar(16);not null;default:pending"`
	DateRegistered time.Time    `json:"dateRegistered"`
}
