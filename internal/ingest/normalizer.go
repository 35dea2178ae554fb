package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"toptan-katalog/internal/domain"
)

// Fixed column layout of uploaded price lists. The transport that turns a
// spreadsheet file into raw rows is out of scope; this package only owns
// the column-to-field mapping.
const (
	colStockCode = iota
	colCompany
	colName
	colUnit
	colShelfPrice
	colPurchaseDiscount
	colListPrice
	colDiscount5
	colDiscount10
	colDiscount15
	colTaxRate
)

// priceColumns are the cells sampled for currency detection.
var priceColumns = []int{colShelfPrice, colListPrice, colDiscount5, colDiscount10, colDiscount15}

// currencyPatterns are checked in priority order: a batch that mixes a
// dollar sign into a lira sheet is treated as USD. One currency per batch.
var currencyPatterns = []struct {
	code    string
	pattern *regexp.Regexp
}{
	{domain.CurrencyUSD, regexp.MustCompile(`(?i)[$]|usd|dollar`)},
	{domain.CurrencyEUR, regexp.MustCompile(`(?i)[€]|eur|euro`)},
	{domain.CurrencyTL, regexp.MustCompile(`(?i)[₺]|tl|lira`)},
}

var currencySymbols = strings.NewReplacer("$", "", "€", "", "₺", "")

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// DetectCurrency scans the price cells of the first ten rows for currency
// symbols or words and returns the first code whose pattern hits, in
// priority order USD, EUR, TL. No hit defaults to USD.
func DetectCurrency(rows [][]string) string {
	var samples []string
	for i := 0; i < len(rows) && i < 10; i++ {
		row := rows[i]
		for _, col := range priceColumns {
			if col < len(row) && row[col] != "" {
				samples = append(samples, row[col])
			}
		}
	}

	for _, cp := range currencyPatterns {
		for _, sample := range samples {
			if cp.pattern.MatchString(sample) {
				return cp.code
			}
		}
	}
	return domain.CurrencyUSD
}

// ParsePrice turns a locale-formatted cell into a number: currency symbols
// are stripped, the decimal comma becomes a dot, remaining non-numeric
// runes are dropped. Anything unparseable normalizes to 0, never to an
// error; downstream arithmetic must stay total.
func ParsePrice(cell string) float64 {
	if cell == "" {
		return 0
	}

	clean := currencySymbols.Replace(cell)
	clean = strings.ReplaceAll(clean, ",", ".")
	clean = nonNumeric.ReplaceAllString(clean, "")

	return lenientFloat(clean)
}

// lenientFloat parses the longest valid numeric prefix of s, so that a
// thousands-separated cell like "1.234.56" still yields a number instead
// of failing the whole row. No prefix parses to 0.
func lenientFloat(s string) float64 {
	for len(s) > 0 {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			return parsed
		}
		s = s[:len(s)-1]
	}
	return 0
}

// parseRate parses percentage cells (purchase discount, tax) with the same
// comma tolerance but without symbol stripping.
func parseRate(cell string) float64 {
	if cell == "" {
		return 0
	}
	return lenientFloat(strings.ReplaceAll(cell, ",", "."))
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return strings.TrimSpace(row[col])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isHeaderRow(row []string) bool {
	first := strings.ToUpper(cellAt(row, colStockCode))
	return strings.Contains(first, "STOK") || strings.Contains(first, "KODU")
}

// NormalizeRows maps raw spreadsheet rows to canonical products. Leading
// blank rows and header rows are skipped; blank cells normalize to empty
// strings or zero. The detected batch currency is stamped on every product
// and returned alongside.
//
// Discount5/10/15 are copied through exactly as parsed; whether the source
// sheets mean absolute prices or percentages is not resolved here.
func NormalizeRows(rows [][]string) ([]domain.Product, string) {
	currency := DetectCurrency(rows)

	start := 0
	for i, row := range rows {
		if !isBlankRow(row) {
			start = i
			break
		}
	}

	products := []domain.Product{}
	for _, row := range rows[start:] {
		if isBlankRow(row) || isHeaderRow(row) {
			continue
		}

		products = append(products, domain.Product{
			StockCode:         cellAt(row, colStockCode),
			Company:           cellAt(row, colCompany),
			Name:              cellAt(row, colName),
			Unit:              cellAt(row, colUnit),
			ShelfPriceInclTax: ParsePrice(cellAt(row, colShelfPrice)),
			PurchaseDiscount:  parseRate(cellAt(row, colPurchaseDiscount)),
			ListPriceInclTax:  ParsePrice(cellAt(row, colListPrice)),
			Discount5:         ParsePrice(cellAt(row, colDiscount5)),
			Discount10:        ParsePrice(cellAt(row, colDiscount10)),
			Discount15:        ParsePrice(cellAt(row, colDiscount15)),
			TaxRate:           parseRate(cellAt(row, colTaxRate)),
			Currency:          currency,
		})
	}

	return products, currency
}
