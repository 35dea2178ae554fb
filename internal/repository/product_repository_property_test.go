package repository

import (
	"context"
	"fmt"
	"testing"

	"toptan-katalog/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func createProductsTable(t *testing.T) {
	t.Helper()

	_, err := testDB.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			position INTEGER PRIMARY KEY,
			stock_code VARCHAR(100) NOT NULL,
			company VARCHAR(255) NOT NULL,
			name VARCHAR(500) NOT NULL,
			unit VARCHAR(50),
			shelf_price_incl_tax DOUBLE PRECISION NOT NULL DEFAULT 0,
			purchase_discount_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			list_price_incl_tax DOUBLE PRECISION NOT NULL DEFAULT 0,
			discount5 DOUBLE PRECISION NOT NULL DEFAULT 0,
			discount10 DOUBLE PRECISION NOT NULL DEFAULT 0,
			discount15 DOUBLE PRECISION NOT NULL DEFAULT 0,
			tax_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			currency VARCHAR(10) NOT NULL DEFAULT 'USD',
			image_url VARCHAR(500)
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create products table: %v", err)
	}
}

// Feature: catalog-platform, Property: a catalog import round-trips through
// storage with attributes and row order preserved
func TestProperty_CatalogImportRoundTrips(t *testing.T) {
	createProductsTable(t)

	repo := NewProductRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("ReplaceAll then List preserves attributes and import order", prop.ForAll(
		func(stockCodes []string, shelfPrice float64, listPrice float64, taxRate float64) bool {
			ctx := context.Background()

			products := make([]domain.Product, len(stockCodes))
			for i, code := range stockCodes {
				products[i] = domain.Product{
					StockCode:         code,
					Company:           "FIRMA A",
					Name:              fmt.Sprintf("URUN %d", i),
					Unit:              "ADET",
					ShelfPriceInclTax: shelfPrice,
					PurchaseDiscount:  10,
					ListPriceInclTax:  listPrice,
					Discount5:         listPrice,
					Discount10:        listPrice,
					Discount15:        listPrice,
					TaxRate:           taxRate,
					Currency:          domain.CurrencyUSD,
				}
			}

			if err := repo.ReplaceAll(ctx, products); err != nil {
				t.Logf("FAIL: ReplaceAll returned error: %v", err)
				return false
			}

			retrieved, err := repo.List(ctx)
			if err != nil {
				t.Logf("FAIL: List returned error: %v", err)
				return false
			}

			if len(retrieved) != len(products) {
				t.Logf("FAIL: expected %d products, got %d", len(products), len(retrieved))
				return false
			}

			for i := range products {
				if retrieved[i].StockCode != products[i].StockCode {
					t.Logf("FAIL: row %d stock code mismatch. Expected %s, got %s",
						i, products[i].StockCode, retrieved[i].StockCode)
					return false
				}
				if retrieved[i].Name != products[i].Name {
					t.Logf("FAIL: row %d name mismatch. Expected %s, got %s",
						i, products[i].Name, retrieved[i].Name)
					return false
				}
				if retrieved[i].ShelfPriceInclTax < shelfPrice-0.01 || retrieved[i].ShelfPriceInclTax > shelfPrice+0.01 {
					t.Logf("FAIL: row %d shelf price mismatch. Expected %f, got %f",
						i, shelfPrice, retrieved[i].ShelfPriceInclTax)
					return false
				}
				if retrieved[i].Currency != domain.CurrencyUSD {
					t.Logf("FAIL: row %d currency mismatch: %s", i, retrieved[i].Currency)
					return false
				}
			}

			count, err := repo.Count(ctx)
			if err != nil {
				t.Logf("FAIL: Count returned error: %v", err)
				return false
			}
			if count != len(products) {
				t.Logf("FAIL: Count = %d, want %d", count, len(products))
				return false
			}

			return true
		},
		gen.SliceOfN(5, gen.RegexMatch(`[A-Z]{2,4}-[0-9]{3,5}`)),
		gen.Float64Range(0.01, 9999.99),
		gen.Float64Range(0.01, 9999.99),
		gen.Float64Range(0, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: catalog-platform, Property: each import replaces the previous
// batch wholesale
func TestProperty_ImportReplacesPreviousBatch(t *testing.T) {
	createProductsTable(t)

	repo := NewProductRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("products from an earlier batch never survive a later one", prop.ForAll(
		func(firstCodes []string, secondCodes []string) bool {
			ctx := context.Background()

			first := make([]domain.Product, len(firstCodes))
			for i, code := range firstCodes {
				first[i] = domain.Product{
					StockCode: "OLD-" + code,
					Company:   "ESKI FIRMA",
					Name:      "ESKI URUN",
					Currency:  domain.CurrencyTL,
				}
			}

			second := make([]domain.Product, len(secondCodes))
			for i, code := range secondCodes {
				second[i] = domain.Product{
					StockCode: "NEW-" + code,
					Company:   "YENI FIRMA",
					Name:      "YENI URUN",
					Currency:  domain.CurrencyEUR,
				}
			}

			if err := repo.ReplaceAll(ctx, first); err != nil {
				t.Logf("FAIL: first ReplaceAll returned error: %v", err)
				return false
			}
			if err := repo.ReplaceAll(ctx, second); err != nil {
				t.Logf("FAIL: second ReplaceAll returned error: %v", err)
				return false
			}

			retrieved, err := repo.List(ctx)
			if err != nil {
				t.Logf("FAIL: List returned error: %v", err)
				return false
			}

			if len(retrieved) != len(second) {
				t.Logf("FAIL: expected %d products after replace, got %d", len(second), len(retrieved))
				return false
			}

			for i, p := range retrieved {
				if p.Company != "YENI FIRMA" {
					t.Logf("FAIL: row %d survived from old batch: %+v", i, p)
					return false
				}
			}

			return true
		},
		gen.SliceOfN(4, gen.RegexMatch(`[0-9]{4}`)),
		gen.SliceOfN(3, gen.RegexMatch(`[0-9]{4}`)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestReplaceAll_EmptyBatchRejected(t *testing.T) {
	createProductsTable(t)

	repo := NewProductRepository(testDB)

	err := repo.ReplaceAll(context.Background(), nil)
	if err != ErrEmptyCatalog {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestUpdateImageURL_AppliesToAllDuplicates(t *testing.T) {
	createProductsTable(t)

	repo := NewProductRepository(testDB)
	ctx := context.Background()

	products := []domain.Product{
		{StockCode: "KLM-100", Company: "FIRMA A", Name: "KALEM SIYAH", Currency: domain.CurrencyUSD},
		{StockCode: "KLM-100", Company: "FIRMA A", Name: "KALEM BEYAZ", Currency: domain.CurrencyUSD},
		{StockCode: "DFT-200", Company: "FIRMA B", Name: "DEFTER", Currency: domain.CurrencyUSD},
	}
	if err := repo.ReplaceAll(ctx, products); err != nil {
		t.Fatalf("ReplaceAll returned error: %v", err)
	}

	if err := repo.UpdateImageURL(ctx, "KLM-100", "https://cdn.example.com/kalem.jpg"); err != nil {
		t.Fatalf("UpdateImageURL returned error: %v", err)
	}

	retrieved, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	for _, p := range retrieved {
		want := ""
		if p.StockCode == "KLM-100" {
			want = "https://cdn.example.com/kalem.jpg"
		}
		if p.ImageURL != want {
			t.Errorf("product %s image = %q, want %q", p.Name, p.ImageURL, want)
		}
	}

	if err := repo.UpdateImageURL(ctx, "YOK-999", "https://cdn.example.com/x.jpg"); err != ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound for unknown stock code, got %v", err)
	}
}
