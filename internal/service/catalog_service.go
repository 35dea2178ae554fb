package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"toptan-katalog/internal/catalog"
	"toptan-katalog/internal/domain"
	"toptan-katalog/internal/ingest"
	"toptan-katalog/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SearchQuery carries one catalog search request.
type SearchQuery struct {
	Term          string
	Category      string
	Supplier      string
	SortKey       string
	TopCheapest   bool
	GroupVariants bool

	// UserID is attached to zero-result logging when the caller is
	// authenticated. Anonymous searches are logged without it.
	UserID *string
}

// SearchResult is the computed catalog view for one query.
type SearchResult struct {
	Items       []catalog.Item   `json:"items"`
	Products    []domain.Product `json:"products"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Companies   []string         `json:"companies"`
	Currency    string           `json:"currency"`
	Total       int              `json:"total"`
}

// ImportSummary reports the outcome of a catalog import.
type ImportSummary struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Currency string `json:"currency"`
}

// CatalogService defines the interface for catalog business logic
type CatalogService interface {
	Search(ctx context.Context, query SearchQuery) (*SearchResult, error)
	Import(ctx context.Context, rows [][]string) (*ImportSummary, error)
	SetProductImage(ctx context.Context, stockCode, imageURL string) error
}

type catalogService struct {
	productRepo      repository.ProductRepository
	termRepo         repository.RestrictedTermRepository
	searchLogRepo    repository.SearchLogRepository
	logger           *zap.Logger
	topCheapestLimit int

	// searchLogLimiters debounces zero-result logging per normalized term,
	// so a user typing character by character produces one row, not one
	// per keystroke.
	searchLogMu       sync.Mutex
	searchLogLimiters map[string]*rate.Limiter
	searchLogDebounce time.Duration
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	productRepo repository.ProductRepository,
	termRepo repository.RestrictedTermRepository,
	searchLogRepo repository.SearchLogRepository,
	logger *zap.Logger,
	searchLogDebounce time.Duration,
	topCheapestLimit int,
) CatalogService {
	if topCheapestLimit <= 0 {
		topCheapestLimit = catalog.DefaultTopCheapestLimit
	}
	return &catalogService{
		productRepo:       productRepo,
		termRepo:          termRepo,
		searchLogRepo:     searchLogRepo,
		logger:            logger,
		topCheapestLimit:  topCheapestLimit,
		searchLogLimiters: make(map[string]*rate.Limiter),
		searchLogDebounce: searchLogDebounce,
	}
}

// Search loads the catalog and blocklist snapshots, applies the filter
// pipeline and groups variants. A zero-result search additionally computes
// name suggestions and records the term for the admin back office.
func (s *catalogService) Search(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	restrictedTerms, err := s.termRepo.ListTerms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load restricted terms: %w", err)
	}

	filter := catalog.Filter{
		Search:           query.Term,
		Category:         query.Category,
		Supplier:         query.Supplier,
		SortKey:          query.SortKey,
		TopCheapest:      query.TopCheapest,
		TopCheapestLimit: s.topCheapestLimit,
		RestrictedTerms:  restrictedTerms,
	}

	filtered := filter.Apply(products)

	result := &SearchResult{
		Products:  filtered,
		Companies: catalog.CompanyOptions(products, restrictedTerms),
		Currency:  batchCurrency(products),
		Total:     len(filtered),
	}

	if query.GroupVariants {
		result.Items = catalog.DetectVariants(filtered)
		catalog.LogSuspectGroups(result.Items, s.logger)
	}

	if len(filtered) == 0 && strings.TrimSpace(query.Term) != "" {
		names := make([]string, len(products))
		for i, p := range products {
			names[i] = p.Name
		}
		result.Suggestions = catalog.FindSimilarNames(
			query.Term, names, catalog.DefaultSimilarityThreshold, catalog.DefaultMaxSuggestions)

		s.recordUnsuccessfulSearch(ctx, query.Term, query.UserID)
	}

	return result, nil
}

// recordUnsuccessfulSearch logs a zero-result term, at most once per
// debounce window per term. Logging failures are reported but never fail
// the search itself.
func (s *catalogService) recordUnsuccessfulSearch(ctx context.Context, term string, userID *string) {
	normalized := strings.ToLower(strings.TrimSpace(term))
	if normalized == "" {
		return
	}

	if !s.allowSearchLog(normalized) {
		return
	}

	search := &domain.UnsuccessfulSearch{
		ID:         uuid.NewString(),
		SearchTerm: term,
		UserID:     userID,
		CreatedAt:  time.Now(),
	}

	if err := s.searchLogRepo.Record(ctx, search); err != nil {
		s.logger.Warn("failed to record unsuccessful search",
			zap.String("term", term),
			zap.Error(err))
	}
}

func (s *catalogService) allowSearchLog(normalized string) bool {
	if s.searchLogDebounce <= 0 {
		return true
	}

	s.searchLogMu.Lock()
	defer s.searchLogMu.Unlock()

	limiter, ok := s.searchLogLimiters[normalized]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(s.searchLogDebounce), 1)
		s.searchLogLimiters[normalized] = limiter
	}
	return limiter.Allow()
}

// Import normalizes raw spreadsheet rows and replaces the catalog with the
// resulting batch.
func (s *catalogService) Import(ctx context.Context, rows [][]string) (*ImportSummary, error) {
	products, currency := ingest.NormalizeRows(rows)

	if err := s.productRepo.ReplaceAll(ctx, products); err != nil {
		return nil, err
	}

	s.logger.Info("catalog imported",
		zap.Int("products", len(products)),
		zap.String("currency", currency))

	return &ImportSummary{
		Imported: len(products),
		Skipped:  len(rows) - len(products),
		Currency: currency,
	}, nil
}

// SetProductImage attaches an image URL to every catalog row with the
// given stock code.
func (s *catalogService) SetProductImage(ctx context.Context, stockCode, imageURL string) error {
	if err := s.productRepo.UpdateImageURL(ctx, stockCode, imageURL); err != nil {
		return err
	}
	return nil
}

// batchCurrency returns the import batch's currency. All rows of a batch
// share one currency, so the first product is authoritative.
func batchCurrency(products []domain.Product) string {
	if len(products) == 0 {
		return domain.CurrencyUSD
	}
	return products[0].Currency
}
