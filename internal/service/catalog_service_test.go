package service

import (
	"context"
	"testing"
	"time"

	"toptan-katalog/internal/domain"
	"toptan-katalog/internal/repository"

	"go.uber.org/zap"
)

type mockProductRepository struct {
	products []domain.Product
	replaces int
}

func (m *mockProductRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return repository.ErrEmptyCatalog
	}
	m.products = products
	m.replaces++
	return nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return m.products, nil
}

func (m *mockProductRepository) ListNames(ctx context.Context) ([]string, error) {
	names := make([]string, len(m.products))
	for i, p := range m.products {
		names[i] = p.Name
	}
	return names, nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	return len(m.products), nil
}

func (m *mockProductRepository) UpdateImageURL(ctx context.Context, stockCode, imageURL string) error {
	updated := false
	for i := range m.products {
		if m.products[i].StockCode == stockCode {
			m.products[i].ImageURL = imageURL
			updated = true
		}
	}
	if !updated {
		return repository.ErrProductNotFound
	}
	return nil
}

type mockTermRepository struct {
	terms []*domain.RestrictedTerm
}

func (m *mockTermRepository) Create(ctx context.Context, term *domain.RestrictedTerm) error {
	m.terms = append(m.terms, term)
	return nil
}

func (m *mockTermRepository) List(ctx context.Context) ([]*domain.RestrictedTerm, error) {
	return m.terms, nil
}

func (m *mockTermRepository) ListTerms(ctx context.Context) ([]string, error) {
	terms := make([]string, len(m.terms))
	for i, t := range m.terms {
		terms[i] = t.Term
	}
	return terms, nil
}

func (m *mockTermRepository) Delete(ctx context.Context, id string) error {
	for i, t := range m.terms {
		if t.ID == id {
			m.terms = append(m.terms[:i], m.terms[i+1:]...)
			return nil
		}
	}
	return repository.ErrTermNotFound
}

type mockSearchLogRepository struct {
	records []*domain.UnsuccessfulSearch
}

func (m *mockSearchLogRepository) Record(ctx context.Context, search *domain.UnsuccessfulSearch) error {
	m.records = append(m.records, search)
	return nil
}

func (m *mockSearchLogRepository) List(ctx context.Context, limit int) ([]*domain.UnsuccessfulSearch, error) {
	return m.records, nil
}

func (m *mockSearchLogRepository) Top(ctx context.Context, limit int) ([]*repository.TopSearch, error) {
	return nil, nil
}

func (m *mockSearchLogRepository) Count(ctx context.Context) (int, error) {
	return len(m.records), nil
}

func (m *mockSearchLogRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func catalogFixture() []domain.Product {
	return []domain.Product{
		{StockCode: "KLM-001", Company: "KALEMCI AS", Name: "KALEM SIYAH", ShelfPriceInclTax: 10, ListPriceInclTax: 12, Currency: domain.CurrencyUSD},
		{StockCode: "KLM-002", Company: "KALEMCI AS", Name: "KALEM BEYAZ", ShelfPriceInclTax: 11, ListPriceInclTax: 13, Currency: domain.CurrencyUSD},
		{StockCode: "DFT-001", Company: "DEFTERCI LTD", Name: "DEFTER A5", ShelfPriceInclTax: 5, ListPriceInclTax: 6, Currency: domain.CurrencyUSD},
	}
}

func newTestCatalogService(productRepo *mockProductRepository, termRepo *mockTermRepository, logRepo *mockSearchLogRepository) CatalogService {
	return NewCatalogService(productRepo, termRepo, logRepo, zap.NewNop(), time.Hour, 5)
}

func TestSearch_FiltersByTermAndGroupsVariants(t *testing.T) {
	productRepo := &mockProductRepository{products: catalogFixture()}
	logRepo := &mockSearchLogRepository{}
	svc := newTestCatalogService(productRepo, &mockTermRepository{}, logRepo)

	result, err := svc.Search(context.Background(), SearchQuery{Term: "kalem", GroupVariants: true})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if result.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", result.Total)
	}
	if len(result.Items) != 1 {
		t.Errorf("expected 1 variant group, got %d items", len(result.Items))
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("expected no suggestions for a successful search, got %v", result.Suggestions)
	}
	if len(logRepo.records) != 0 {
		t.Errorf("successful searches must not be logged, got %d records", len(logRepo.records))
	}
	if result.Currency != domain.CurrencyUSD {
		t.Errorf("Currency = %q, want USD", result.Currency)
	}
}

func TestSearch_RestrictedTermsHideProductsAndCompanies(t *testing.T) {
	productRepo := &mockProductRepository{products: catalogFixture()}
	termRepo := &mockTermRepository{terms: []*domain.RestrictedTerm{
		{ID: "1", Term: "kalemci", Type: domain.TermTypeCompany},
	}}
	svc := newTestCatalogService(productRepo, termRepo, &mockSearchLogRepository{})

	result, err := svc.Search(context.Background(), SearchQuery{})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if result.Total != 1 {
		t.Fatalf("expected only the unrestricted product, got %d", result.Total)
	}
	if result.Products[0].Name != "DEFTER A5" {
		t.Errorf("unexpected surviving product: %s", result.Products[0].Name)
	}
	if len(result.Companies) != 1 || result.Companies[0] != "DEFTERCI LTD" {
		t.Errorf("restricted company leaked into options: %v", result.Companies)
	}
}

func TestSearch_ZeroResultsSuggestsAndLogsOnce(t *testing.T) {
	productRepo := &mockProductRepository{products: catalogFixture()}
	logRepo := &mockSearchLogRepository{}
	svc := newTestCatalogService(productRepo, &mockTermRepository{}, logRepo)
	ctx := context.Background()

	// Near-miss of "KALEM SIYAH" with no literal match.
	result, err := svc.Search(ctx, SearchQuery{Term: "kalem siyha"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if result.Total != 0 {
		t.Fatalf("expected zero results, got %d", result.Total)
	}
	if len(result.Suggestions) == 0 {
		t.Fatal("expected suggestions for a near-miss term")
	}
	if result.Suggestions[0] != "KALEM SIYAH" {
		t.Errorf("top suggestion = %q, want KALEM SIYAH", result.Suggestions[0])
	}

	// Repeating the same term within the debounce window must not log again.
	if _, err := svc.Search(ctx, SearchQuery{Term: "kalem siyha"}); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(logRepo.records) != 1 {
		t.Fatalf("expected exactly 1 logged search, got %d", len(logRepo.records))
	}
	if logRepo.records[0].SearchTerm != "kalem siyha" {
		t.Errorf("logged term = %q", logRepo.records[0].SearchTerm)
	}

	// A different term gets its own debounce window.
	if _, err := svc.Search(ctx, SearchQuery{Term: "zzz bulunamaz"}); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(logRepo.records) != 2 {
		t.Fatalf("expected 2 logged searches, got %d", len(logRepo.records))
	}
}

func TestSearch_BlankTermZeroCatalogNotLogged(t *testing.T) {
	productRepo := &mockProductRepository{}
	logRepo := &mockSearchLogRepository{}
	svc := newTestCatalogService(productRepo, &mockTermRepository{}, logRepo)

	result, err := svc.Search(context.Background(), SearchQuery{Term: "   "})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if result.Total != 0 {
		t.Fatalf("expected empty result, got %d", result.Total)
	}
	if len(logRepo.records) != 0 {
		t.Errorf("blank terms must never be logged, got %d records", len(logRepo.records))
	}
}

func TestImport_NormalizesAndReplacesCatalog(t *testing.T) {
	productRepo := &mockProductRepository{products: catalogFixture()}
	svc := newTestCatalogService(productRepo, &mockTermRepository{}, &mockSearchLogRepository{})

	rows := [][]string{
		{"STOK KODU", "FIRMA", "ÜRÜN ADI", "BİRİM", "RAF FİYATI", "ALIŞ İSK.", "LİSTE FİYATI", "İND.5", "İND.10", "İND.15", "KDV"},
		{"MKS-100", "MAKASCI", "MAKAS", "ADET", "€14,50", "10", "€16,00", "15,20", "14,40", "13,60", "20"},
		{"", "", "", "", "", "", "", "", "", "", ""},
		{"SLG-200", "SILGICI", "SILGI", "ADET", "€2,00", "5", "€2,50", "2,38", "2,25", "2,13", "20"},
	}

	summary, err := svc.Import(context.Background(), rows)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if summary.Imported != 2 {
		t.Errorf("Imported = %d, want 2", summary.Imported)
	}
	if summary.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", summary.Skipped)
	}
	if summary.Currency != domain.CurrencyEUR {
		t.Errorf("Currency = %q, want EUR", summary.Currency)
	}
	if len(productRepo.products) != 2 {
		t.Fatalf("catalog not replaced, has %d products", len(productRepo.products))
	}
	if productRepo.products[0].ShelfPriceInclTax != 14.5 {
		t.Errorf("ShelfPriceInclTax = %v, want 14.5", productRepo.products[0].ShelfPriceInclTax)
	}
}

func TestImport_EmptySheetRejected(t *testing.T) {
	productRepo := &mockProductRepository{products: catalogFixture()}
	svc := newTestCatalogService(productRepo, &mockTermRepository{}, &mockSearchLogRepository{})

	_, err := svc.Import(context.Background(), [][]string{})
	if err != repository.ErrEmptyCatalog {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	if len(productRepo.products) != 3 {
		t.Errorf("a failed import must not touch the existing catalog")
	}
}

func TestSetProductImage(t *testing.T) {
	productRepo := &mockProductRepository{products: catalogFixture()}
	svc := newTestCatalogService(productRepo, &mockTermRepository{}, &mockSearchLogRepository{})
	ctx := context.Background()

	if err := svc.SetProductImage(ctx, "KLM-001", "https://cdn.example.com/kalem.jpg"); err != nil {
		t.Fatalf("SetProductImage returned error: %v", err)
	}
	if productRepo.products[0].ImageURL != "https://cdn.example.com/kalem.jpg" {
		t.Errorf("image not applied: %+v", productRepo.products[0])
	}

	if err := svc.SetProductImage(ctx, "YOK-999", "https://cdn.example.com/x.jpg"); err != repository.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}
