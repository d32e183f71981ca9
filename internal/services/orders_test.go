package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
)

func placeOrder(t *testing.T, f catalogFixture, orders *OrderService, user uuid.UUID) *OrderView {
	t.Helper()
	p, err := f.catalog.Add(ctx, f.seller, NewProduct{Title: "Pot", Price: "250", Category: "artifacts", Image: imageHeader(t)})
	if err != nil {
		t.Fatal(err)
	}
	o, err := orders.Create(ctx, user, NewOrder{
		Items:   []OrderItemInput{{Product: p.ID.String(), Qty: 2, Price: p.Price}},
		Address: "12 Temple Rd",
	})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestCreateOrderComputesTotalAndKeepsLocation(t *testing.T) {
	f := newCatalog(t)
	orders := NewOrderService(f.store)
	p, _ := f.catalog.Add(ctx, f.seller, NewProduct{Title: "Pot", Price: "250", Category: "artifacts", Image: imageHeader(t)})
	user := uuid.New()

	total := decimal.NewFromInt(500)
	o, err := orders.Create(ctx, user, NewOrder{
		Items:    []OrderItemInput{{Product: p.ID.String(), Qty: 2, Price: p.Price}},
		Total:    &total,
		Address:  "12 Temple Rd",
		Location: json.RawMessage(`{"type":"Point","coordinates":[80.27,13.08]}`),
	})
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != models.OrderPending || !o.Total.Equal(total) || len(o.Items) != 1 {
		t.Errorf("order = %+v", o)
	}
	if !strings.Contains(string(o.Location), `"Point"`) || !strings.Contains(string(o.Location), "80.27") {
		t.Errorf("location = %s", o.Location)
	}

	mine, err := orders.Mine(ctx, user)
	if err != nil || len(mine) != 1 || mine[0].ID != o.ID {
		t.Fatalf("mine = %+v, %v", mine, err)
	}
	if len(mine[0].Location) == 0 {
		t.Error("stored order lost its location")
	}
}

func TestCreateOrderValidation(t *testing.T) {
	f := newCatalog(t)
	orders := NewOrderService(f.store)
	p, _ := f.catalog.Add(ctx, f.seller, NewProduct{Title: "Pot", Price: "250", Category: "artifacts", Image: imageHeader(t)})
	item := OrderItemInput{Product: p.ID.String(), Qty: 1, Price: p.Price}
	wrong := decimal.NewFromInt(1)

	cases := map[string]NewOrder{
		"no items":       {Address: "x"},
		"no address":     {Items: []OrderItemInput{item}},
		"bad product":    {Items: []OrderItemInput{{Product: "nope", Qty: 1}}, Address: "x"},
		"unknown":        {Items: []OrderItemInput{{Product: uuid.NewString(), Qty: 1}}, Address: "x"},
		"zero qty":       {Items: []OrderItemInput{{Product: p.ID.String()}}, Address: "x"},
		"total mismatch": {Items: []OrderItemInput{item}, Total: &wrong, Address: "x"},
		"stale price":    {Items: []OrderItemInput{{Product: p.ID.String(), Qty: 1, Price: decimal.RequireFromString("0.01")}}, Address: "x"},
		"not a point":    {Items: []OrderItemInput{item}, Address: "x", Location: json.RawMessage(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`)},
		"out of range":   {Items: []OrderItemInput{item}, Address: "x", Location: json.RawMessage(`{"type":"Point","coordinates":[200,10]}`)},
	}
	for name, in := range cases {
		if _, err := orders.Create(ctx, uuid.New(), in); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("%s: err = %v, want validation", name, err)
		}
	}
}

func TestCreateOrderChargesListedPrice(t *testing.T) {
	f := newCatalog(t)
	orders := NewOrderService(f.store)
	p, err := f.catalog.Add(ctx, f.seller, NewProduct{Title: "Pot", Price: "250", Category: "artifacts", Image: imageHeader(t)})
	if err != nil {
		t.Fatal(err)
	}

	o, err := orders.Create(ctx, uuid.New(), NewOrder{
		Items:   []OrderItemInput{{Product: p.ID.String(), Qty: 3}},
		Address: "x",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !o.Items[0].Price.Equal(decimal.NewFromInt(250)) || !o.Total.Equal(decimal.NewFromInt(750)) {
		t.Errorf("item price %s total %s, want 250 and 750", o.Items[0].Price, o.Total)
	}

	_, err = orders.Create(ctx, uuid.New(), NewOrder{
		Items:   []OrderItemInput{{Product: p.ID.String(), Qty: 1, Price: decimal.RequireFromString("0.01")}},
		Address: "x",
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("underpriced item: err = %v, want validation", err)
	}
}

func TestSetStatusAcceptsAnyEnumeratedStatus(t *testing.T) {
	f := newCatalog(t)
	orders := NewOrderService(f.store)
	o := placeOrder(t, f, orders, uuid.New())

	for _, st := range []string{"delivered", "pending", "cancelled", "shipped", "confirmed"} {
		got, err := orders.SetStatus(ctx, o.ID.String(), st)
		if err != nil {
			t.Fatalf("%s: %v", st, err)
		}
		if string(got.Status) != st {
			t.Errorf("status = %s, want %s", got.Status, st)
		}
	}

	_, err := orders.SetStatus(ctx, o.ID.String(), "teleported")
	wantKind(t, err, apperr.KindValidation)
	_, err = orders.SetStatus(ctx, uuid.NewString(), "shipped")
	wantKind(t, err, apperr.KindNotFound)
	_, err = orders.SetStatus(ctx, "42", "shipped")
	wantKind(t, err, apperr.KindValidation)
}

func TestDeliveryQueue(t *testing.T) {
	f := newCatalog(t)
	orders := NewOrderService(f.store)
	first := placeOrder(t, f, orders, uuid.New())
	second := placeOrder(t, f, orders, uuid.New())

	got, err := orders.SetDeliveryStatus(ctx, first.ID.String(), "accepted")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.OrderConfirmed {
		t.Errorf("accepted stored as %s", got.Status)
	}
	if _, err := orders.SetDeliveryStatus(ctx, second.ID.String(), "delivered"); err != nil {
		t.Fatal(err)
	}
	_, err = orders.SetDeliveryStatus(ctx, second.ID.String(), "lost")
	wantKind(t, err, apperr.KindValidation)

	open, err := orders.Open(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 || open[0].ID != first.ID {
		t.Errorf("open orders = %+v", open)
	}
}
