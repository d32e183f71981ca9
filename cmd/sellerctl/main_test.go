package main

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
	"artisan_market/internal/repository"
)

func TestRunReviewsAndCreatesStaff(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	if err := store.CreateSeller(ctx, &models.Seller{Name: "M", Email: "meera@looms.in", BusinessName: "Looms"}); err != nil {
		t.Fatal(err)
	}

	if err := run(ctx, store, bcrypt.MinCost, options{email: "meera@looms.in", status: "active"}); err != nil {
		t.Fatal(err)
	}
	seller, _ := store.FindSellerByEmail(ctx, "meera@looms.in")
	if seller.Status != models.SellerActive {
		t.Errorf("status = %s", seller.Status)
	}
	err := run(ctx, store, bcrypt.MinCost, options{email: "meera@looms.in", status: "rejected"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("second review: %v", err)
	}

	err = run(ctx, store, bcrypt.MinCost, options{email: "ravi@market.in", staff: "delivery", name: "Ravi", password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	if u, err := store.FindUserByEmail(ctx, "ravi@market.in"); err != nil || u.Role != models.RoleDelivery {
		t.Errorf("rider = %+v, %v", u, err)
	}
	if err := run(ctx, store, bcrypt.MinCost, options{email: "x@market.in", staff: "seller", name: "X", password: "pw"}); err == nil {
		t.Error("staff account created with a non-staff role")
	}
}
