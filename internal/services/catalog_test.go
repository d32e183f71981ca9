package services

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"artisan_market/internal/apperr"
	"artisan_market/internal/middleware"
	"artisan_market/internal/models"
	"artisan_market/internal/repository"
	"artisan_market/internal/storage"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func imageHeader(t *testing.T) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("image", "item.png")
	fw.Write(pngBytes)
	mw.Close()
	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	return form.File["image"][0]
}

type catalogFixture struct {
	store   *repository.MemoryStore
	catalog *CatalogService
	seller  *middleware.Identity
	admin   *middleware.Identity
}

func newCatalog(t *testing.T) catalogFixture {
	t.Helper()
	auth, store, _ := newAuth(t, AllowAnyStatus)
	images, err := storage.NewDiskStore(t.TempDir(), "/assets")
	if err != nil {
		t.Fatal(err)
	}
	reg, err := auth.RegisterSeller(ctx, SellerRegistration{Name: "A", Email: "a@x.com", Business: "B", Password: "p1"})
	if err != nil {
		t.Fatal(err)
	}
	admin, _ := auth.CreateStaff(ctx, Registration{Name: "Root", Email: "root@x.com", Password: "pw"}, models.RoleAdmin)

	return catalogFixture{
		store:   store,
		catalog: NewCatalogService(store, images, NewSellerService(store)),
		seller:  &middleware.Identity{UserID: reg.User.ID, Email: reg.User.Email, Role: models.RoleSeller, SellerID: reg.User.SellerID},
		admin:   &middleware.Identity{UserID: admin.ID, Email: admin.Email, Role: models.RoleAdmin},
	}
}

func TestCheckPrice(t *testing.T) {
	cases := []struct {
		category models.Category
		price    string
		ok       bool
	}{
		{models.CategorySaree, "500", false},
		{models.CategorySaree, "1000", true},
		{models.CategorySaree, "4000", true},
		{models.CategorySaree, "8000", true},
		{models.CategorySaree, "8000.01", false},
		{models.CategoryArtifacts, "199.99", false},
		{models.CategoryArtifacts, "5000", true},
		{models.CategoryLifestyle, "10", true},
		{models.CategoryLifestyle, "1001", false},
		{models.CategoryOther, "0.50", false},
		{models.CategoryOther, "1", true},
		{models.CategoryOther, "99999999", true},
	}
	for _, tc := range cases {
		err := CheckPrice(tc.category, decimal.RequireFromString(tc.price))
		if (err == nil) != tc.ok {
			t.Errorf("%s @ %s: err = %v, want ok=%v", tc.category, tc.price, err, tc.ok)
		}
	}
}

func TestCheckPriceCitesBounds(t *testing.T) {
	err := CheckPrice(models.CategorySaree, decimal.NewFromInt(500))
	e := wantKind(t, err, apperr.KindValidation)
	for _, want := range []string{"₹500.00", "₹1000", "₹8000", `"saree"`} {
		if !strings.Contains(e.Message, want) {
			t.Errorf("message %q does not mention %s", e.Message, want)
		}
	}
}

func TestAddProductEnforcesPriceRange(t *testing.T) {
	f := newCatalog(t)

	_, err := f.catalog.Add(ctx, f.seller, NewProduct{Title: "Silk", Price: "500", Category: "saree", Image: imageHeader(t)})
	wantKind(t, err, apperr.KindValidation)

	p, err := f.catalog.Add(ctx, f.seller, NewProduct{Title: "Silk", Price: "4000", Category: "Saree", Image: imageHeader(t)})
	if err != nil {
		t.Fatal(err)
	}
	if p.SellerID != *f.seller.SellerID || p.Category != models.CategorySaree || !strings.HasPrefix(p.ImageURL, "/assets/products/") {
		t.Errorf("product = %+v", p)
	}

	list, _ := f.catalog.ListByCategory(ctx, "SAREE")
	if len(list) != 1 || list[0].ID != p.ID {
		t.Errorf("category list = %+v", list)
	}
}

func TestAddProductValidation(t *testing.T) {
	f := newCatalog(t)
	cases := map[string]NewProduct{
		"no image":         {Title: "T", Price: "300", Category: "artifacts"},
		"bad category":     {Title: "T", Price: "300", Category: "shoes", Image: imageHeader(t)},
		"no title":         {Price: "300", Category: "artifacts", Image: imageHeader(t)},
		"negative price":   {Title: "T", Price: "-3", Category: "artifacts", Image: imageHeader(t)},
		"bad stock":        {Title: "T", Price: "300", Category: "artifacts", Stock: "many", Image: imageHeader(t)},
		"malformed seller": {SellerID: "abc", Title: "T", Price: "300", Category: "artifacts", Image: imageHeader(t)},
	}
	for name, in := range cases {
		if _, err := f.catalog.Add(ctx, f.seller, in); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("%s: err = %v, want validation", name, err)
		}
	}
}

func TestAddProductSellerScope(t *testing.T) {
	f := newCatalog(t)

	_, err := f.catalog.Add(ctx, f.seller, NewProduct{SellerID: uuid.NewString(), Title: "T", Price: "300", Category: "artifacts", Image: imageHeader(t)})
	wantKind(t, err, apperr.KindAuthorization)

	_, err = f.catalog.Add(ctx, f.admin, NewProduct{Title: "T", Price: "300", Category: "artifacts", Image: imageHeader(t)})
	wantKind(t, err, apperr.KindValidation)

	p, err := f.catalog.Add(ctx, f.admin, NewProduct{SellerID: f.seller.SellerID.String(), Title: "T", Price: "300", Category: "artifacts", Image: imageHeader(t)})
	if err != nil {
		t.Fatal(err)
	}
	if p.SellerID != *f.seller.SellerID {
		t.Errorf("admin listing went to %s", p.SellerID)
	}
}

func TestListByUnknownCategory(t *testing.T) {
	f := newCatalog(t)
	_, err := f.catalog.ListByCategory(ctx, "weapons")
	wantKind(t, err, apperr.KindNotFound)
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	f := newCatalog(t)
	p, err := f.catalog.Add(ctx, f.seller, NewProduct{Title: "Lamp", Price: "50", Category: "lifestyle", Image: imageHeader(t)})
	if err != nil {
		t.Fatal(err)
	}

	auth := NewAuthService(f.store, middleware.NewTokenService("s", 0), bcrypt.MinCost, AllowAnyStatus)
	other, err := auth.RegisterSeller(ctx, SellerRegistration{Name: "O", Email: "o@x.com", Business: "O", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	intruder := &middleware.Identity{UserID: other.User.ID, Role: models.RoleSeller, SellerID: other.User.SellerID}

	title := "Brass lamp"
	_, err = f.catalog.Update(ctx, intruder, p.ID.String(), ProductUpdate{Title: &title})
	wantKind(t, err, apperr.KindAuthorization)

	updated, err := f.catalog.Update(ctx, f.seller, p.ID.String(), ProductUpdate{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != title {
		t.Errorf("title = %q", updated.Title)
	}

	_, err = f.catalog.Update(ctx, f.seller, "not-a-uuid", ProductUpdate{})
	wantKind(t, err, apperr.KindValidation)

	if err := f.catalog.Delete(ctx, intruder, p.ID.String()); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("intruder delete: %v", err)
	}
	if err := f.catalog.Delete(ctx, f.admin, p.ID.String()); err != nil {
		t.Fatal(err)
	}
	err = f.catalog.Delete(ctx, f.seller, p.ID.String())
	wantKind(t, err, apperr.KindNotFound)
}

func sheet(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	x := excelize.NewFile()
	defer x.Close()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := x.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := x.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestImportProducts(t *testing.T) {
	f := newCatalog(t)
	buf := sheet(t,
		[]interface{}{"productName", "category", "price", "description", "stock"},
		[]interface{}{"Kanjivaram", "saree", 4500, "silk", 3},
		[]interface{}{"Cheap saree", "saree", 500, "", 1},
		[]interface{}{"Clay pot", "artifacts", 250, "terracotta", ""},
		[]interface{}{"Mystery", "gadgets", 20, "", 1},
	)

	report, err := f.catalog.Import(ctx, f.seller, "", buf)
	if err != nil {
		t.Fatal(err)
	}
	if report.Imported != 2 || len(report.Errors) != 2 {
		t.Fatalf("report = %+v", report)
	}
	if report.Errors[0].Row != 3 || !strings.Contains(report.Errors[0].Message, "1000") {
		t.Errorf("first error = %+v", report.Errors[0])
	}
	if report.Errors[1].Row != 5 {
		t.Errorf("second error = %+v", report.Errors[1])
	}

	all, _ := f.catalog.List(ctx)
	if len(all) != 2 {
		t.Errorf("catalog has %d products, want 2", len(all))
	}
}

func TestImportRejectsWrongHeader(t *testing.T) {
	f := newCatalog(t)
	buf := sheet(t, []interface{}{"name", "price"}, []interface{}{"x", 1})
	_, err := f.catalog.Import(ctx, f.seller, "", buf)
	wantKind(t, err, apperr.KindValidation)
}
