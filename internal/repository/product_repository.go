package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toptan-katalog/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyCatalog    = errors.New("import contains no products")
)

// ProductRepository defines the interface for catalog data access. The
// catalog is replaced wholesale per import batch; there is no per-product
// create/update because the spreadsheet is the source of truth.
type ProductRepository interface {
	ReplaceAll(ctx context.Context, products []domain.Product) error
	List(ctx context.Context) ([]domain.Product, error)
	ListNames(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	UpdateImageURL(ctx context.Context, stockCode, imageURL string) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// ReplaceAll swaps the entire catalog for a new import batch inside one
// transaction. The position column preserves spreadsheet row order, which
// downstream filtering and variant grouping rely on. Duplicate stock codes
// are allowed; the business key is not unique.
func (r *productRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return ErrEmptyCatalog
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	query := `
		INSERT INTO products (position, stock_code, company, name, unit,
			shelf_price_incl_tax, purchase_discount_rate, list_price_incl_tax,
			discount5, discount10, discount15, tax_rate, currency, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare catalog insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range products {
		_, err := stmt.ExecContext(
			ctx,
			i,
			p.StockCode,
			p.Company,
			p.Name,
			p.Unit,
			p.ShelfPriceInclTax,
			p.PurchaseDiscount,
			p.ListPriceInclTax,
			p.Discount5,
			p.Discount10,
			p.Discount15,
			p.TaxRate,
			p.Currency,
			p.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %q: %w", p.StockCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog replace: %w", err)
	}

	return nil
}

// List returns the full catalog snapshot in import order
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT stock_code, company, name, unit,
			shelf_price_incl_tax, purchase_discount_rate, list_price_incl_tax,
			discount5, discount10, discount15, tax_rate, currency, image_url
		FROM products
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.StockCode,
			&p.Company,
			&p.Name,
			&p.Unit,
			&p.ShelfPriceInclTax,
			&p.PurchaseDiscount,
			&p.ListPriceInclTax,
			&p.Discount5,
			&p.Discount10,
			&p.Discount15,
			&p.TaxRate,
			&p.Currency,
			&p.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ListNames returns every product name in import order, for the
// search-suggestion universe
func (r *productRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM products ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list product names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan product name: %w", err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product names: %w", err)
	}

	return names, nil
}

// Count returns the catalog size
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// UpdateImageURL sets the image for every catalog row carrying the stock
// code. Duplicates share one image on purpose.
func (r *productRepository) UpdateImageURL(ctx context.Context, stockCode, imageURL string) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE products SET image_url = $2 WHERE stock_code = $1`,
		stockCode,
		imageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update product image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
