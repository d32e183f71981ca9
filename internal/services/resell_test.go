package services

import (
	"testing"

	"github.com/google/uuid"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
	"artisan_market/internal/repository"
	"artisan_market/internal/storage"
)

func TestResellAdd(t *testing.T) {
	store := repository.NewMemoryStore()
	images, _ := storage.NewDiskStore(t.TempDir(), "/assets")
	resell := NewResellService(store, images)
	reseller := uuid.New()

	_, err := resell.Add(ctx, reseller, NewResellItem{Name: "Shawl", Category: "Saree Collection", ItemType: "New", Price: "900"})
	if e := wantKind(t, err, apperr.KindValidation); e.Message != "No file received" {
		t.Errorf("message = %q", e.Message)
	}

	_, err = resell.Add(ctx, reseller, NewResellItem{Name: "Shawl", Category: "Shoes", ItemType: "New", Price: "900", Image: imageHeader(t)})
	wantKind(t, err, apperr.KindValidation)

	item, err := resell.Add(ctx, reseller, NewResellItem{Name: "Shawl", Category: "saree collection", ItemType: "Second Hand", Price: "900", Image: imageHeader(t)})
	if err != nil {
		t.Fatal(err)
	}
	if item.Category != "Saree Collection" || item.ResellerID != reseller {
		t.Errorf("item = %+v", item)
	}

	mine, _ := resell.ListMine(ctx, reseller)
	others, _ := resell.ListMine(ctx, uuid.New())
	if len(mine) != 1 || len(others) != 0 {
		t.Errorf("mine = %d, others = %d", len(mine), len(others))
	}
}

func TestContactSubmit(t *testing.T) {
	contacts := NewContactService(repository.NewMemoryStore())
	if _, err := contacts.Submit(ctx, models.Contact{Email: "a@x.com", Message: "hi"}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("missing name: %v", err)
	}
	if _, err := contacts.Submit(ctx, models.Contact{Name: "A", Email: "a@x.com", Message: "hi"}); err != nil {
		t.Fatal(err)
	}
	list, _ := contacts.List(ctx)
	if len(list) != 1 || list[0].Message != "hi" {
		t.Errorf("list = %+v", list)
	}
}
