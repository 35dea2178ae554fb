package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order status values for the approval workflow. Orders start pending and
// are approved or rejected by an admin.
const (
	OrderStatusPending  = "pending"
	OrderStatusApproved = "approved"
	OrderStatusRejected = "rejected"
)

// Order is a submitted cart awaiting admin approval.
type Order struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      uuid.UUID   `json:"user_id" db:"user_id"`
	Status      string      `json:"status" db:"status"`
	TotalAmount float64     `json:"total_amount" db:"total_amount"`
	Currency    string      `json:"currency" db:"currency"`
	AdminNote   string      `json:"admin_note" db:"admin_note"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty" db:"approved_at"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	Items       []OrderItem `json:"items,omitempty"`
}

// OrderItem is a snapshot of a cart line at submission time. Prices are
// copied from the product so later imports cannot rewrite order history.
type OrderItem struct {
	ID               uuid.UUID `json:"id" db:"id"`
	OrderID          uuid.UUID `json:"order_id" db:"order_id"`
	StockCode        string    `json:"stok_kodu" db:"stock_code"`
	ProductName      string    `json:"urun_adi" db:"product_name"`
	Company          string    `json:"firma" db:"company"`
	Unit             string    `json:"birim" db:"unit"`
	Quantity         int       `json:"quantity" db:"quantity"`
	ListPriceInclTax float64   `json:"liste_fiyati_kdv_dahil" db:"list_price_incl_tax"`
	AppliedDiscount  int       `json:"applied_discount" db:"applied_discount"`
	SelectedVariant  string    `json:"selected_variant,omitempty" db:"selected_variant"`
	LineTotal        float64   `json:"total" db:"line_total"`
}

// OrderStats summarizes orders for the admin analytics tab.
type OrderStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
