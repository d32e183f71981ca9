package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"artisan_market/internal/apperr"
	"artisan_market/internal/middleware"
	"artisan_market/internal/models"
)

// ImportColumns is the header row a bulk listing sheet must start with.
var ImportColumns = []string{"productName", "category", "price", "description", "stock"}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportReport struct {
	Imported int              `json:"imported"`
	Products []models.Product `json:"products"`
	Errors   []RowError       `json:"errors"`
}

// Import lists every valid row of an .xlsx sheet. Rows go through the same
// category and price rules as a single listing; bad rows are reported by
// their spreadsheet row number and skipped. Imported products carry no image.
func (s *CatalogService) Import(ctx context.Context, caller *middleware.Identity, formSellerID string, r io.Reader) (*ImportReport, error) {
	sellerID, err := s.resolveSeller(ctx, caller, formSellerID)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validation("Could not read the spreadsheet. Upload an .xlsx file.")
	}
	defer f.Close()

	sheet := "Sheet1"
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperr.Validation("Could not read the spreadsheet rows.")
	}
	if len(rows) == 0 || !headerMatches(rows[0]) {
		return nil, apperr.Validation("The first row must be: " + strings.Join(ImportColumns, ", "))
	}

	report := &ImportReport{Products: []models.Product{}, Errors: []RowError{}}
	var batch []models.Product
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blank(row) {
			continue
		}
		p, err := productFromRow(row)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: rowNum, Message: apperr.From(err).Message})
			continue
		}
		p.SellerID = sellerID
		batch = append(batch, *p)
	}
	if len(batch) == 0 {
		return report, apperr.Validation("No valid rows to import.")
	}

	if err := s.store.CreateProducts(ctx, batch); err != nil {
		return nil, apperr.Internal(err, "Server error: Failed to import product listings.")
	}
	report.Imported = len(batch)
	report.Products = batch
	logrus.WithFields(logrus.Fields{
		"seller_id": sellerID,
		"imported":  report.Imported,
		"rejected":  len(report.Errors),
	}).Info("product sheet imported")
	return report, nil
}

func productFromRow(row []string) (*models.Product, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	title := cell(0)
	if title == "" {
		return nil, apperr.Validation("productName is required.")
	}
	category, ok := models.ParseCategory(cell(1))
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("Invalid category %q.", cell(1)))
	}
	price, err := decimal.NewFromString(cell(2))
	if err != nil || !price.IsPositive() {
		return nil, apperr.Validation(fmt.Sprintf("Invalid price %q.", cell(2)))
	}
	if err := CheckPrice(category, price); err != nil {
		return nil, err
	}
	stock, err := parseStock(cell(4))
	if err != nil {
		return nil, err
	}
	return &models.Product{
		Title:       title,
		Category:    category,
		Price:       price.Round(2),
		Description: cell(3),
		Stock:       stock,
	}, nil
}

func headerMatches(row []string) bool {
	if len(row) < len(ImportColumns) {
		return false
	}
	for i, col := range ImportColumns {
		if !strings.EqualFold(strings.TrimSpace(row[i]), col) {
			return false
		}
	}
	return true
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
