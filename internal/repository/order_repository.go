package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toptan-katalog/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	SetStatus(ctx context.Context, id uuid.UUID, status, adminNote string) error
	Stats(ctx context.Context) (*domain.OrderStats, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts an order with its item snapshots inside one transaction
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin order create: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, user_id, status, total_amount, currency, admin_note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.ExecContext(
		ctx,
		query,
		order.ID,
		order.UserID,
		order.Status,
		order.TotalAmount,
		order.Currency,
		order.AdminNote,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, stock_code, product_name, company, unit,
			quantity, list_price_incl_tax, applied_discount, selected_variant, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, item := range order.Items {
		_, err := tx.ExecContext(
			ctx,
			itemQuery,
			item.ID,
			order.ID,
			item.StockCode,
			item.ProductName,
			item.Company,
			item.Unit,
			item.Quantity,
			item.ListPriceInclTax,
			item.AppliedDiscount,
			item.SelectedVariant,
			item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// FindByID retrieves an order and its items
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, currency, admin_note, approved_at, created_at
		FROM orders
		WHERE id = $1
	`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.TotalAmount,
		&order.Currency,
		&order.AdminNote,
		&order.ApprovedAt,
		&order.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// ListByUser retrieves a user's own orders, newest first, without items
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, currency, admin_note, approved_at, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListAll retrieves every order for the admin back office, newest first
func (r *orderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, currency, admin_note, approved_at, created_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// SetStatus moves an order through the approval workflow. Approval stamps
// approved_at; any other status clears it.
func (r *orderRepository) SetStatus(ctx context.Context, id uuid.UUID, status, adminNote string) error {
	query := `
		UPDATE orders
		SET status = $2,
		    admin_note = $3,
		    approved_at = CASE WHEN $2 = 'approved' THEN NOW() ELSE NULL END
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, adminNote)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Stats counts orders per workflow status
func (r *orderRepository) Stats(ctx context.Context) (*domain.OrderStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM orders
	`

	stats := &domain.OrderStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Approved,
		&stats.Rejected,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	return stats, nil
}

func (r *orderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `
		SELECT id, order_id, stock_code, product_name, company, unit,
			quantity, list_price_incl_tax, applied_discount, selected_variant, line_total
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.StockCode,
			&item.ProductName,
			&item.Company,
			&item.Unit,
			&item.Quantity,
			&item.ListPriceInclTax,
			&item.AppliedDiscount,
			&item.SelectedVariant,
			&item.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func scanOrders(rows *sql.Rows) ([]*domain.Order, error) {
	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.TotalAmount,
			&order.Currency,
			&order.AdminNote,
			&order.ApprovedAt,
			&order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
