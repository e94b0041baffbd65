package repos

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"zarika/internal/domain"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create persists the address, the order header, every line item and the
// matching stock decrements in a single transaction. The decrement is
// conditional (stock >= qty); any line that cannot be satisfied rolls the
// whole order back, so there is never a partial decrement or an orphaned
// order row.
func (r *OrderRepo) Create(o domain.Order, addr domain.Address, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO addresses(id,user_id,full_name,phone,address_line,city,state,pincode,created_at)
	  VALUES(?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, addr.ID, addr.UserID, addr.FullName, addr.Phone, addr.AddressLine, addr.City, addr.State, addr.Pincode); err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  INSERT INTO orders(id,user_id,address_id,items_json,subtotal,shipping,total,status,payment_status,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.UserID, o.AddressID, o.ItemsJSON,
		o.Subtotal.String(), o.Shipping.String(), o.Total.String(),
		domain.StatusPending, domain.PaymentUnpaid); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id,product_id,qty,price,variant)
		  VALUES(?,?,?,?,?)
		`, o.ID, it.ProductID, it.Qty, it.Price.String(), it.Variant); err != nil {
			return err
		}

		res, err := tx.Exec(`
		  UPDATE products
		  SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		  WHERE id = ? AND stock >= ?
		`, it.Qty, it.ProductID, it.Qty)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w for %s (need %d)", ErrInsufficientStock, it.ProductID, it.Qty)
		}
	}

	return tx.Commit()
}

const orderCols = `
  id, user_id, COALESCE(address_id,'') AS address_id, items_json, subtotal, shipping, total, status,
  COALESCE(gateway_order_id,'') AS gateway_order_id, COALESCE(payment_id,'') AS payment_id,
  payment_status, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT`+orderCols+` FROM orders WHERE id = ?`, orderID)
	return o, err
}

func (r *OrderRepo) Items(orderID string) ([]domain.OrderItem, error) {
	out := []domain.OrderItem{}
	err := r.db.Select(&out, `
	  SELECT oi.order_id, oi.product_id, p.title, oi.qty, oi.price, COALESCE(oi.variant,'') AS variant
	  FROM order_items oi
	  JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY p.title
	`, orderID)
	return out, err
}

func (r *OrderRepo) Address(addressID string) (domain.Address, error) {
	var a domain.Address
	err := r.db.Get(&a, `
	  SELECT id, user_id, full_name, phone, address_line, city, state, pincode, created_at
	  FROM addresses WHERE id = ?
	`, addressID)
	return a, err
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT`+orderCols+` FROM orders
	  WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT`+orderCols+` FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// UpdateStatus writes the new status and, when the transition releases
// inventory (entering CANCELLED/REFUNDED from outside that pair), restocks
// every line item inside the same transaction. The release check compares
// against the status read before the update, which is what keeps a repeated
// cancel from restocking twice. Returns the previous status.
func (r *OrderRepo) UpdateStatus(orderID, newStatus string) (string, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var prev string
	if err := tx.Get(&prev, `SELECT status FROM orders WHERE id = ?`, orderID); err != nil {
		return "", err
	}

	if domain.ReleasesStock(prev, newStatus) {
		type line struct {
			ProductID string `db:"product_id"`
			Qty       int    `db:"qty"`
		}
		var lines []line
		if err := tx.Select(&lines, `SELECT product_id, qty FROM order_items WHERE order_id = ?`, orderID); err != nil {
			return "", err
		}
		for _, l := range lines {
			if _, err := tx.Exec(`
			  UPDATE products SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
			`, l.Qty, l.ProductID); err != nil {
				return "", err
			}
		}
	}

	if _, err := tx.Exec(`
	  UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, newStatus, orderID); err != nil {
		return "", err
	}

	return prev, tx.Commit()
}

// MarkPaid records the gateway correlation after a verified payment and
// advances a PENDING order to PROCESSING. Orders already past PENDING keep
// their status; only the payment fields refresh.
func (r *OrderRepo) MarkPaid(orderID, gatewayOrderID, paymentID string) error {
	res, err := r.db.Exec(`
	  UPDATE orders
	  SET gateway_order_id = ?, payment_id = ?, payment_status = ?,
	      status = CASE WHEN status = ? THEN ? ELSE status END,
	      updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, gatewayOrderID, paymentID, domain.PaymentPaid,
		domain.StatusPending, domain.StatusProcessing, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s: no such row", orderID)
	}
	return nil
}

// DashboardStats feeds the admin dashboard.
type DashboardStats struct {
	TotalOrders    int             `db:"total_orders" json:"totalOrders"`
	TotalRevenue   decimal.Decimal `db:"total_revenue" json:"totalRevenue"`
	TotalProducts  int             `db:"total_products" json:"totalProducts"`
	TotalCustomers int             `db:"total_customers" json:"totalCustomers"`
}

func (r *OrderRepo) Stats() (DashboardStats, error) {
	var s DashboardStats
	err := r.db.Get(&s, `
	  SELECT
	    (SELECT COUNT(*) FROM orders)                            AS total_orders,
	    (SELECT COALESCE(SUM(total),0) FROM orders)              AS total_revenue,
	    (SELECT COUNT(*) FROM products)                          AS total_products,
	    (SELECT COUNT(*) FROM users WHERE role = 'CUSTOMER')     AS total_customers
	`)
	return s, err
}
