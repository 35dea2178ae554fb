package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"toptan-katalog/internal/domain"
	"toptan-katalog/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrBlankTerm       = errors.New("restricted term must not be blank")
	ErrInvalidTermType = errors.New("restricted term type must be keyword, company or product")
)

// DashboardStats aggregates the counters shown on the admin landing page.
type DashboardStats struct {
	Products             int                `json:"products"`
	Users                int                `json:"users"`
	UnsuccessfulSearches int                `json:"unsuccessful_searches"`
	Orders               *domain.OrderStats `json:"orders"`
}

// AdminService defines the interface for back-office business logic
type AdminService interface {
	AddRestrictedTerm(ctx context.Context, term string, termType domain.RestrictedTermType, description string) (*domain.RestrictedTerm, error)
	ListRestrictedTerms(ctx context.Context) ([]*domain.RestrictedTerm, error)
	RemoveRestrictedTerm(ctx context.Context, id string) error

	ListUnsuccessfulSearches(ctx context.Context, limit int) ([]*domain.UnsuccessfulSearch, error)
	TopUnsuccessfulSearches(ctx context.Context, limit int) ([]*repository.TopSearch, error)
	DeleteUnsuccessfulSearch(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListCompanies(ctx context.Context) ([]*domain.CompanySummary, error)

	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type adminService struct {
	userRepo      repository.UserRepository
	productRepo   repository.ProductRepository
	termRepo      repository.RestrictedTermRepository
	searchLogRepo repository.SearchLogRepository
	orderRepo     repository.OrderRepository
	logger        *zap.Logger
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	termRepo repository.RestrictedTermRepository,
	searchLogRepo repository.SearchLogRepository,
	orderRepo repository.OrderRepository,
	logger *zap.Logger,
) AdminService {
	return &adminService{
		userRepo:      userRepo,
		productRepo:   productRepo,
		termRepo:      termRepo,
		searchLogRepo: searchLogRepo,
		orderRepo:     orderRepo,
		logger:        logger,
	}
}

// AddRestrictedTerm stores a new blocklist entry. Terms are kept verbatim;
// matching is case-insensitive at query time.
func (s *adminService) AddRestrictedTerm(ctx context.Context, term string, termType domain.RestrictedTermType, description string) (*domain.RestrictedTerm, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrBlankTerm
	}

	switch termType {
	case domain.TermTypeKeyword, domain.TermTypeCompany, domain.TermTypeProduct:
	default:
		return nil, ErrInvalidTermType
	}

	entry := &domain.RestrictedTerm{
		ID:          uuid.NewString(),
		Term:        term,
		Type:        termType,
		Description: description,
		CreatedAt:   time.Now(),
	}

	if err := s.termRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("restricted term added",
		zap.String("term", term),
		zap.String("type", string(termType)))

	return entry, nil
}

// ListRestrictedTerms retrieves all blocklist entries
func (s *adminService) ListRestrictedTerms(ctx context.Context) ([]*domain.RestrictedTerm, error) {
	return s.termRepo.List(ctx)
}

// RemoveRestrictedTerm deletes a blocklist entry by ID
func (s *adminService) RemoveRestrictedTerm(ctx context.Context, id string) error {
	if err := s.termRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("restricted term removed", zap.String("id", id))
	return nil
}

// ListUnsuccessfulSearches retrieves recent zero-result searches
func (s *adminService) ListUnsuccessfulSearches(ctx context.Context, limit int) ([]*domain.UnsuccessfulSearch, error) {
	return s.searchLogRepo.List(ctx, limit)
}

// TopUnsuccessfulSearches retrieves the most frequent zero-result terms
func (s *adminService) TopUnsuccessfulSearches(ctx context.Context, limit int) ([]*repository.TopSearch, error) {
	return s.searchLogRepo.Top(ctx, limit)
}

// DeleteUnsuccessfulSearch removes one logged search
func (s *adminService) DeleteUnsuccessfulSearch(ctx context.Context, id string) error {
	return s.searchLogRepo.Delete(ctx, id)
}

// ListUsers retrieves all registered users
func (s *adminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// ListCompanies aggregates users by company
func (s *adminService) ListCompanies(ctx context.Context) ([]*domain.CompanySummary, error) {
	return s.userRepo.ListCompanies(ctx)
}

// Dashboard aggregates the admin landing-page counters
func (s *adminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	searches, err := s.searchLogRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count searches: %w", err)
	}

	orders, err := s.orderRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order stats: %w", err)
	}

	return &DashboardStats{
		Products:             products,
		Users:                users,
		UnsuccessfulSearches: searches,
		Orders:               orders,
	}, nil
}
