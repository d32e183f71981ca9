package services

import (
	"testing"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
)

func TestReviewIsFinal(t *testing.T) {
	auth, store, _ := newAuth(t, AllowAnyStatus)
	reg, err := auth.RegisterSeller(ctx, SellerRegistration{Name: "A", Email: "a@x.com", Business: "B", Password: "p1"})
	if err != nil {
		t.Fatal(err)
	}
	sellers := NewSellerService(store)

	if _, err := sellers.Review(ctx, "a@x.com", models.SellerPending); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("pending -> pending: %v", err)
	}
	got, err := sellers.Review(ctx, "A@X.com", models.SellerRejected)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.SellerRejected {
		t.Errorf("status = %s", got.Status)
	}
	if _, err := sellers.Review(ctx, "a@x.com", models.SellerActive); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("rejected -> active: %v", err)
	}
	if _, err := sellers.Review(ctx, "ghost@x.com", models.SellerActive); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown seller: %v", err)
	}

	app, err := sellers.ApplicationFor(ctx, reg.User.ID, reg.User.Email)
	if err != nil {
		t.Fatal(err)
	}
	if app.Status != models.SellerRejected {
		t.Errorf("application status = %s", app.Status)
	}
}

func TestListAndReviewByID(t *testing.T) {
	auth, store, _ := newAuth(t, AllowAnyStatus)
	first, _ := auth.RegisterSeller(ctx, SellerRegistration{Name: "A", Email: "a@x.com", Business: "A Weaves", Password: "p1"})
	auth.RegisterSeller(ctx, SellerRegistration{Name: "B", Email: "b@x.com", Business: "B Brass", Password: "p1"})
	sellers := NewSellerService(store)

	if _, err := sellers.ReviewByID(ctx, first.User.SellerID.String(), models.SellerActive); err != nil {
		t.Fatal(err)
	}

	pending, err := sellers.List(ctx, "pending")
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Email != "b@x.com" {
		t.Errorf("pending = %+v", pending)
	}
	all, _ := sellers.List(ctx, "")
	if len(all) != 2 || all[0].Email != "b@x.com" {
		t.Errorf("all sellers newest first = %+v", all)
	}

	if _, err := sellers.List(ctx, "archived"); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("bad status filter: %v", err)
	}
	if _, err := sellers.ReviewByID(ctx, "42", models.SellerActive); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("bad id: %v", err)
	}
	if _, err := sellers.ReviewByID(ctx, first.User.ID.String(), models.SellerActive); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("user id is not a seller id: %v", err)
	}
}
