package domain

import "github.com/shopspring/decimal"

// Order lifecycle. Wire values are the upper-case strings.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
	StatusRefunded   = "REFUNDED"
)

const (
	PaymentUnpaid = "UNPAID"
	PaymentPaid   = "PAID"
)

var orderStatuses = map[string]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
	StatusRefunded:   true,
}

func ValidStatus(s string) bool { return orderStatuses[s] }

// ReleasesStock reports whether a status transition returns reserved
// inventory. Only entering CANCELLED/REFUNDED from outside that pair restocks;
// re-cancelling an already released order must not restock again.
func ReleasesStock(from, to string) bool {
	released := func(s string) bool { return s == StatusCancelled || s == StatusRefunded }
	return released(to) && !released(from)
}

type Address struct {
	ID          string `db:"id" json:"id"`
	UserID      string `db:"user_id" json:"-"`
	FullName    string `db:"full_name" json:"fullName"`
	Phone       string `db:"phone" json:"phone"`
	AddressLine string `db:"address_line" json:"addressLine"`
	City        string `db:"city" json:"city"`
	State       string `db:"state" json:"state"`
	Pincode     string `db:"pincode" json:"pincode"`
	CreatedAt   string `db:"created_at" json:"-"`
}

type Order struct {
	ID             string          `db:"id" json:"id"`
	UserID         string          `db:"user_id" json:"userId"`
	AddressID      string          `db:"address_id" json:"addressId"`
	ItemsJSON      string          `db:"items_json" json:"-"`
	Subtotal       decimal.Decimal `db:"subtotal" json:"subtotal"`
	Shipping       decimal.Decimal `db:"shipping" json:"shipping"`
	Total          decimal.Decimal `db:"total" json:"total"`
	Status         string          `db:"status" json:"status"`
	GatewayOrderID string          `db:"gateway_order_id" json:"gatewayOrderId,omitempty"`
	PaymentID      string          `db:"payment_id" json:"paymentId,omitempty"`
	PaymentStatus  string          `db:"payment_status" json:"paymentStatus"`
	CreatedAt      string          `db:"created_at" json:"createdAt"`
	UpdatedAt      string          `db:"updated_at" json:"-"`
}

// OrderItem is the normalized line row. Price is the unit price captured at
// purchase time and is never recomputed from the product afterwards.
type OrderItem struct {
	OrderID   string          `db:"order_id" json:"-"`
	ProductID string          `db:"product_id" json:"productId"`
	Title     string          `db:"title" json:"title"`
	Qty       int             `db:"qty" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Variant   string          `db:"variant" json:"variant,omitempty"`
}
