package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toptan-katalog/internal/cart"
	"toptan-katalog/internal/domain"
	"toptan-katalog/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyOrder     = errors.New("order must contain at least one item")
	ErrOrderNotOwned  = errors.New("order does not belong to this user")
	ErrOrderFinalized = errors.New("order has already been approved or rejected")
)

// OrderService defines the interface for order business logic
type OrderService interface {
	Submit(ctx context.Context, userID uuid.UUID, items []cart.Item) (*domain.Order, error)
	GetByID(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, isAdmin bool) (*domain.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	Approve(ctx context.Context, orderID uuid.UUID, adminNote string) error
	Reject(ctx context.Context, orderID uuid.UUID, adminNote string) error
	Stats(ctx context.Context) (*domain.OrderStats, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, logger *zap.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Submit turns a cart into a pending order. Every line is snapshotted with
// its price at submission time so later catalog imports cannot rewrite
// order history.
func (s *orderService) Submit(ctx context.Context, userID uuid.UUID, items []cart.Item) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	orderID := uuid.New()
	orderItems := make([]domain.OrderItem, len(items))
	for i, it := range items {
		lineTotal, _ := cart.LineTotal(it).Float64()
		orderItems[i] = domain.OrderItem{
			ID:               uuid.New(),
			OrderID:          orderID,
			StockCode:        it.StockCode,
			ProductName:      it.Name,
			Company:          it.Company,
			Unit:             it.Unit,
			Quantity:         it.Quantity,
			ListPriceInclTax: it.ListPriceInclTax,
			AppliedDiscount:  it.AppliedDiscount,
			SelectedVariant:  it.SelectedVariant,
			LineTotal:        lineTotal,
		}
	}

	totalAmount, _ := cart.GrandTotal(items).Float64()

	order := &domain.Order{
		ID:          orderID,
		UserID:      userID,
		Status:      domain.OrderStatusPending,
		TotalAmount: totalAmount,
		Currency:    items[0].Currency,
		CreatedAt:   time.Now(),
		Items:       orderItems,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order submitted",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", totalAmount))

	return order, nil
}

// GetByID retrieves an order. Non-admin callers can only read their own
// orders.
func (s *orderService) GetByID(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, isAdmin bool) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && order.UserID != userID {
		return nil, ErrOrderNotOwned
	}

	return order, nil
}

// ListForUser retrieves the caller's own orders, newest first
func (s *orderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll retrieves every order for the admin back office
func (s *orderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Approve marks a pending order approved
func (s *orderService) Approve(ctx context.Context, orderID uuid.UUID, adminNote string) error {
	return s.finalize(ctx, orderID, domain.OrderStatusApproved, adminNote)
}

// Reject marks a pending order rejected
func (s *orderService) Reject(ctx context.Context, orderID uuid.UUID, adminNote string) error {
	return s.finalize(ctx, orderID, domain.OrderStatusRejected, adminNote)
}

func (s *orderService) finalize(ctx context.Context, orderID uuid.UUID, status, adminNote string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	// Approval decisions are final; only pending orders transition.
	if order.Status != domain.OrderStatusPending {
		return ErrOrderFinalized
	}

	if err := s.orderRepo.SetStatus(ctx, orderID, status, adminNote); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info("order finalized",
		zap.String("order_id", orderID.String()),
		zap.String("status", status))

	return nil
}

// Stats summarizes orders for the admin analytics tab
func (s *orderService) Stats(ctx context.Context) (*domain.OrderStats, error) {
	stats, err := s.orderRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order stats: %w", err)
	}
	return stats, nil
}
