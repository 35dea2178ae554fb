package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"toptan-katalog/internal/domain"
)

var (
	ErrTermNotFound      = errors.New("restricted term not found")
	ErrTermAlreadyExists = errors.New("restricted term already exists")
)

// RestrictedTermRepository defines the interface for blocklist data access.
// Admins create and delete terms; the catalog pipeline only reads them as
// an immutable snapshot per computation.
type RestrictedTermRepository interface {
	Create(ctx context.Context, term *domain.RestrictedTerm) error
	List(ctx context.Context) ([]*domain.RestrictedTerm, error)
	ListTerms(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type restrictedTermRepository struct {
	db *sql.DB
}

// NewRestrictedTermRepository creates a new instance of RestrictedTermRepository
func NewRestrictedTermRepository(db *sql.DB) RestrictedTermRepository {
	return &restrictedTermRepository{db: db}
}

// Create inserts a new restricted term using parameterized queries
func (r *restrictedTermRepository) Create(ctx context.Context, term *domain.RestrictedTerm) error {
	query := `
		INSERT INTO restricted_terms (id, term, type, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		term.ID,
		term.Term,
		term.Type,
		term.Description,
		term.CreatedAt,
	)

	if err != nil {
		// Check for unique constraint violation (duplicate term)
		if strings.Contains(err.Error(), "restricted_terms_term_key") {
			return ErrTermAlreadyExists
		}
		return fmt.Errorf("failed to create restricted term: %w", err)
	}

	return nil
}

// List retrieves all restricted terms for the admin back office
func (r *restrictedTermRepository) List(ctx context.Context) ([]*domain.RestrictedTerm, error) {
	query := `
		SELECT id, term, type, description, created_at
		FROM restricted_terms
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list restricted terms: %w", err)
	}
	defer rows.Close()

	terms := []*domain.RestrictedTerm{}
	for rows.Next() {
		term := &domain.RestrictedTerm{}
		if err := rows.Scan(
			&term.ID,
			&term.Term,
			&term.Type,
			&term.Description,
			&term.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan restricted term: %w", err)
		}
		terms = append(terms, term)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restricted terms: %w", err)
	}

	return terms, nil
}

// ListTerms returns the case-folded blocklist snapshot for the filter
// pipeline
func (r *restrictedTermRepository) ListTerms(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT LOWER(term) FROM restricted_terms`)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocklist: %w", err)
	}
	defer rows.Close()

	terms := []string{}
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("failed to scan blocklist term: %w", err)
		}
		terms = append(terms, term)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blocklist: %w", err)
	}

	return terms, nil
}

// Delete removes a restricted term using parameterized queries
func (r *restrictedTermRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM restricted_terms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete restricted term: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrTermNotFound
	}

	return nil
}
