package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toptan-katalog/internal/domain"
)

var (
	ErrSearchLogNotFound = errors.New("unsuccessful search not found")
)

// TopSearch is an aggregated zero-result query for the admin analytics
// view.
type TopSearch struct {
	SearchTerm string `json:"search_term"`
	Count      int    `json:"count"`
}

// SearchLogRepository records searches that returned zero results
type SearchLogRepository interface {
	Record(ctx context.Context, search *domain.UnsuccessfulSearch) error
	List(ctx context.Context, limit int) ([]*domain.UnsuccessfulSearch, error)
	Top(ctx context.Context, limit int) ([]*TopSearch, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

type searchLogRepository struct {
	db *sql.DB
}

// NewSearchLogRepository creates a new instance of SearchLogRepository
func NewSearchLogRepository(db *sql.DB) SearchLogRepository {
	return &searchLogRepository{db: db}
}

// Record inserts an unsuccessful search using parameterized queries
func (r *searchLogRepository) Record(ctx context.Context, search *domain.UnsuccessfulSearch) error {
	query := `
		INSERT INTO unsuccessful_searches (id, search_term, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, search.ID, search.SearchTerm, search.UserID, search.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record unsuccessful search: %w", err)
	}

	return nil
}

// List retrieves recent unsuccessful searches, newest first
func (r *searchLogRepository) List(ctx context.Context, limit int) ([]*domain.UnsuccessfulSearch, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, search_term, user_id, created_at
		FROM unsuccessful_searches
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsuccessful searches: %w", err)
	}
	defer rows.Close()

	searches := []*domain.UnsuccessfulSearch{}
	for rows.Next() {
		search := &domain.UnsuccessfulSearch{}
		if err := rows.Scan(&search.ID, &search.SearchTerm, &search.UserID, &search.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unsuccessful search: %w", err)
		}
		searches = append(searches, search)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unsuccessful searches: %w", err)
	}

	return searches, nil
}

// Top aggregates the most frequent zero-result queries
func (r *searchLogRepository) Top(ctx context.Context, limit int) ([]*TopSearch, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT LOWER(search_term), COUNT(*) AS hits
		FROM unsuccessful_searches
		GROUP BY LOWER(search_term)
		ORDER BY hits DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate searches: %w", err)
	}
	defer rows.Close()

	top := []*TopSearch{}
	for rows.Next() {
		entry := &TopSearch{}
		if err := rows.Scan(&entry.SearchTerm, &entry.Count); err != nil {
			return nil, fmt.Errorf("failed to scan search aggregate: %w", err)
		}
		top = append(top, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search aggregates: %w", err)
	}

	return top, nil
}

// Count returns the total number of recorded unsuccessful searches
func (r *searchLogRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM unsuccessful_searches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unsuccessful searches: %w", err)
	}
	return count, nil
}

// Delete removes a recorded search using parameterized queries
func (r *searchLogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM unsuccessful_searches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete unsuccessful search: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrSearchLogNotFound
	}

	return nil
}
