package catalog

import (
	"sort"
	"strings"
	"sync"

	"toptan-katalog/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by Filter. The key strings match the values the web
// client has always sent; an unknown key leaves the input order untouched.
const (
	SortByStockCode     = "stokKodu"
	SortByName          = "urunAdi"
	SortByShelfPriceAsc = "rafFiyatiKdvDahil-low"
	SortByShelfPriceDsc = "rafFiyatiKdvDahil-high"
	SortByListPriceAsc  = "listeFiyatiKdvDahil-low"
	SortByListPriceDsc  = "listeFiyatiKdvDahil-high"
)

// DefaultTopCheapestLimit is the truncation size of the "top cheapest"
// toggle.
const DefaultTopCheapestLimit = 5

// AllOption is the selector value meaning "no category/supplier filter".
const AllOption = "all"

// turkishCollator provides locale-aware ordering for name and stock-code
// sorts. Collators are not safe for concurrent use, so comparisons go
// through compareTurkish below.
var (
	turkishCollator = collate.New(language.Turkish)
	collatorMu      sync.Mutex
)

func compareTurkish(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return turkishCollator.CompareString(a, b)
}

// Filter carries the full filter state for one catalog computation, passed
// by value into Apply. Category and Supplier both select over the shared
// Company attribute; that reuse mirrors the upstream data model and is
// deliberate.
type Filter struct {
	Search           string
	Category         string
	Supplier         string
	SortKey          string
	TopCheapest      bool
	TopCheapestLimit int
	RestrictedTerms  []string
}

// restricted reports whether any blocklist term occurs in the product's
// name, stock code or company, case-insensitively. This check runs before
// every other filter, unconditionally.
func restricted(p domain.Product, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	searchable := strings.ToLower(p.Name + " " + p.StockCode + " " + p.Company)
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(searchable, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// Apply runs the filter/sort contract over an immutable product snapshot
// and returns a new slice. The input is never mutated.
func (f Filter) Apply(products []domain.Product) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))

	for _, p := range products {
		if restricted(p, f.RestrictedTerms) {
			continue
		}

		// Free text searches name and stock code only; company is reached
		// through the category/supplier selectors instead.
		if !EnhancedMatch(f.Search, p.Name) && !EnhancedMatch(f.Search, p.StockCode) {
			continue
		}

		if f.Category != "" && f.Category != AllOption && p.Company != f.Category {
			continue
		}
		if f.Supplier != "" && f.Supplier != AllOption && p.Company != f.Supplier {
			continue
		}

		filtered = append(filtered, p)
	}

	switch f.SortKey {
	case SortByShelfPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ShelfPriceInclTax < filtered[j].ShelfPriceInclTax
		})
	case SortByShelfPriceDsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ShelfPriceInclTax > filtered[j].ShelfPriceInclTax
		})
	case SortByListPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ListPriceInclTax < filtered[j].ListPriceInclTax
		})
	case SortByListPriceDsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ListPriceInclTax > filtered[j].ListPriceInclTax
		})
	case SortByName:
		sort.SliceStable(filtered, func(i, j int) bool {
			return compareTurkish(filtered[i].Name, filtered[j].Name) < 0
		})
	case SortByStockCode:
		sort.SliceStable(filtered, func(i, j int) bool {
			return compareTurkish(filtered[i].StockCode, filtered[j].StockCode) < 0
		})
	}

	// The toggle re-sorts by shelf price and truncates AFTER the sort-key
	// pass; both sorts run and the second one wins.
	if f.TopCheapest {
		limit := f.TopCheapestLimit
		if limit <= 0 {
			limit = DefaultTopCheapestLimit
		}
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ShelfPriceInclTax < filtered[j].ShelfPriceInclTax
		})
		if len(filtered) > limit {
			filtered = filtered[:limit]
		}
	}

	return filtered
}

// CompanyOptions returns the distinct non-blank company values, in first-
// appearance order, minus any value containing a restricted term. An empty
// result is a valid "all" selector, not an error.
func CompanyOptions(products []domain.Product, restrictedTerms []string) []string {
	seen := make(map[string]bool)
	options := []string{}

	for _, p := range products {
		company := p.Company
		if strings.TrimSpace(company) == "" || seen[company] {
			continue
		}
		seen[company] = true

		blocked := false
		lower := strings.ToLower(company)
		for _, term := range restrictedTerms {
			if term != "" && strings.Contains(lower, strings.ToLower(term)) {
				blocked = true
				break
			}
		}
		if !blocked {
			options = append(options, company)
		}
	}
	return options
}
