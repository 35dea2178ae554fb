package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"toptan-katalog/internal/cart"
	"toptan-katalog/internal/domain"
	"toptan-katalog/internal/middleware"
	"toptan-katalog/internal/repository"
	"toptan-katalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderLine is one cart line in an order submission.
type OrderLine struct {
	Product         domain.Product `json:"product"`
	Quantity        int            `json:"quantity" validate:"required,min=1"`
	AppliedDiscount int            `json:"applied_discount"`
	SelectedVariant string         `json:"selected_variant"`
}

// SubmitOrderRequest is the client-authoritative cart at checkout.
type SubmitOrderRequest struct {
	Items []OrderLine `json:"items" validate:"required,min=1,dive"`
}

// DecisionRequest carries an admin's approval or rejection note.
type DecisionRequest struct {
	AdminNote string `json:"admin_note"`
}

// OrderHandler handles HTTP requests for order operations
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers order routes. Submission and own-order reads
// require auth; the approval workflow is admin-only.
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Submit)
		r.Get("/", h.ListMine)
		r.Get("/{orderID}", h.GetByID)
	})

	r.Route("/api/admin/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Get("/", h.ListAll)
		r.Post("/{orderID}/approve", h.Approve)
		r.Post("/{orderID}/reject", h.Reject)
	})
}

// Submit converts the submitted cart into a pending order
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req SubmitOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Rebuild the cart through the cart helpers so line identities and
	// discount tiers are validated server-side, whatever the client sent.
	var items []cart.Item
	for _, line := range req.Items {
		items = cart.Add(items, line.Product, line.Quantity, line.SelectedVariant)
		if line.AppliedDiscount != 0 {
			identity := cart.VariantIdentity(line.Product, line.SelectedVariant)
			for _, it := range items {
				if it.VariantID == identity {
					items = cart.ApplyDiscount(items, it.CartID, line.AppliedDiscount)
					break
				}
			}
		}
	}

	order, err := h.orderService.Submit(r.Context(), userID, items)
	if err != nil {
		if err == service.ErrEmptyOrder {
			middleware.RespondWithError(w, http.StatusBadRequest, "order must contain at least one item")
			return
		}

		h.logger.Error("Order submission failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// ListMine lists the caller's own orders
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	orders, err := h.orderService.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// GetByID retrieves one order; admins can read any order
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	role, _ := middleware.GetUserRole(r.Context())

	order, err := h.orderService.GetByID(r.Context(), userID, orderID, role == "admin")
	if err != nil {
		switch err {
		case repository.ErrOrderNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		case service.ErrOrderNotOwned:
			middleware.RespondWithError(w, http.StatusForbidden, "insufficient permissions")
		default:
			h.logger.Error("Failed to get order", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get order")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// ListAll lists every order for the admin back office
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Approve marks a pending order approved
func (h *OrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.orderService.Approve)
}

// Reject marks a pending order rejected
func (h *OrderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.orderService.Reject)
}

func (h *OrderHandler) decide(w http.ResponseWriter, r *http.Request, decision func(ctx context.Context, orderID uuid.UUID, adminNote string) error) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := decision(r.Context(), orderID, req.AdminNote); err != nil {
		switch err {
		case repository.ErrOrderNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		case service.ErrOrderFinalized:
			middleware.RespondWithError(w, http.StatusConflict, "order has already been decided")
		default:
			h.logger.Error("Order decision failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}

func (h *OrderHandler) callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		h.logger.Error("Invalid user ID format", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return uuid.Nil, false
	}

	return userID, true
}
