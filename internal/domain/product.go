package domain

import "time"

// Currency codes supported by catalog imports. One currency per batch;
// mixed-currency imports do not occur.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyTL  = "TL"
)

// Product is the canonical catalog entity produced by a spreadsheet import.
// StockCode is the business key but is not globally unique; duplicate rows
// are possible and downstream code handles them.
//
// Discount5/10/15 hold the values of the source columns unchanged. Whether
// they are absolute prices or percentages is inconsistent in the source
// data, so they pass through as-is.
type Product struct {
	StockCode         string  `json:"stok_kodu" db:"stock_code"`
	Company           string  `json:"firma" db:"company"`
	Name              string  `json:"urun_adi" db:"name"`
	Unit              string  `json:"birim" db:"unit"`
	ShelfPriceInclTax float64 `json:"raf_fiyati_kdv_dahil" db:"shelf_price_incl_tax"`
	PurchaseDiscount  float64 `json:"alis_iskonto_orani" db:"purchase_discount_rate"`
	ListPriceInclTax  float64 `json:"liste_fiyati_kdv_dahil" db:"list_price_incl_tax"`
	Discount5         float64 `json:"indirim5" db:"discount5"`
	Discount10        float64 `json:"indirim10" db:"discount10"`
	Discount15        float64 `json:"indirim15" db:"discount15"`
	TaxRate           float64 `json:"kdv" db:"tax_rate"`
	Currency          string  `json:"currency" db:"currency"`
	ImageURL          string  `json:"image_url,omitempty" db:"image_url"`
}

// RestrictedTermType classifies a blocklist entry.
type RestrictedTermType string

const (
	TermTypeKeyword RestrictedTermType = "keyword"
	TermTypeCompany RestrictedTermType = "company"
	TermTypeProduct RestrictedTermType = "product"
)

// RestrictedTerm is an admin-curated case-insensitive substring blocklist
// entry. The catalog pipeline treats the list as a read-only snapshot.
type RestrictedTerm struct {
	ID          string             `json:"id" db:"id"`
	Term        string             `json:"term" db:"term"`
	Type        RestrictedTermType `json:"type" db:"type"`
	Description string             `json:"description" db:"description"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
}

// UnsuccessfulSearch records a search that returned zero results, for the
// admin back office.
type UnsuccessfulSearch struct {
	ID         string    `json:"id" db:"id"`
	SearchTerm string    `json:"search_term" db:"search_term"`
	UserID     *string   `json:"user_id,omitempty" db:"user_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
