// Package cart implements the client-authoritative shopping cart model:
// the server never stores a cart, it only receives one at order
// submission. These helpers are pure and exercised by both the HTTP layer
// and the order service.
package cart

import (
	"regexp"
	"strings"

	"toptan-katalog/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount tiers a buyer may apply per line. Zero means list price.
var allowedDiscounts = map[int]bool{0: true, 5: true, 10: true, 15: true}

// Item is a cart line: a product plus quantity, the applied percentage
// tier and a synthetic identity. CartID is unique per line; VariantID
// distinguishes otherwise-identical stock codes carrying different
// selected variants.
type Item struct {
	domain.Product
	Quantity        int    `json:"quantity"`
	AppliedDiscount int    `json:"applied_discount"`
	CartID          string `json:"cart_id"`
	VariantID       string `json:"variant_id"`
	SelectedVariant string `json:"selected_variant,omitempty"`
}

var variantSlugSpaces = regexp.MustCompile(`\s+`)

// VariantIdentity builds the merge key for a product plus selected
// variant: the stock code with a lowercased, dash-joined variant suffix.
// Without a variant the bare stock code identifies the line.
func VariantIdentity(p domain.Product, selectedVariant string) string {
	stockCode := p.StockCode
	if stockCode == "" {
		stockCode = "no-stock"
	}
	if selectedVariant == "" {
		return stockCode
	}
	slug := strings.ToLower(variantSlugSpaces.ReplaceAllString(selectedVariant, "-"))
	return stockCode + "-" + slug
}

// Add merges a product into the cart: an existing line with the same
// variant identity gains quantity, otherwise a new line is appended with a
// fresh cart ID. The input slice is not mutated; the updated cart is
// returned.
func Add(items []Item, p domain.Product, quantity int, selectedVariant string) []Item {
	if quantity <= 0 {
		quantity = 1
	}

	identity := VariantIdentity(p, selectedVariant)

	updated := make([]Item, len(items))
	copy(updated, items)

	for i := range updated {
		if updated[i].VariantID == identity {
			updated[i].Quantity += quantity
			return updated
		}
	}

	return append(updated, Item{
		Product:         p,
		Quantity:        quantity,
		AppliedDiscount: 0,
		CartID:          uuid.NewString(),
		VariantID:       identity,
		SelectedVariant: selectedVariant,
	})
}

// ApplyDiscount sets the percentage tier on the line with the given cart
// ID. Tiers outside {0,5,10,15} are ignored and the cart comes back
// unchanged.
func ApplyDiscount(items []Item, cartID string, percent int) []Item {
	if !allowedDiscounts[percent] {
		return items
	}

	updated := make([]Item, len(items))
	copy(updated, items)
	for i := range updated {
		if updated[i].CartID == cartID {
			updated[i].AppliedDiscount = percent
		}
	}
	return updated
}

// ItemCount sums quantities across all lines.
func ItemCount(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// UnitPrice is the tax-inclusive list price after the line's percentage
// tier. Money math runs on decimals so tier arithmetic cannot drift.
func UnitPrice(it Item) decimal.Decimal {
	price := decimal.NewFromFloat(it.ListPriceInclTax)
	if it.AppliedDiscount == 0 {
		return price
	}
	factor := decimal.NewFromInt(int64(100 - it.AppliedDiscount)).Div(decimal.NewFromInt(100))
	return price.Mul(factor)
}

// LineTotal is the discounted unit price times quantity.
func LineTotal(it Item) decimal.Decimal {
	return UnitPrice(it).Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// GrandTotal sums all line totals.
func GrandTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it))
	}
	return total
}
