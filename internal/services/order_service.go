package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"zarika/internal/apperr"
	"zarika/internal/domain"
	"zarika/internal/repos"
	"zarika/internal/validate"
)

type OrderService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
}

func NewOrderService(orders *repos.OrderRepo, prods *repos.ProductRepo) *OrderService {
	return &OrderService{Orders: orders, Prods: prods}
}

type OrderLineInput struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Variant   string          `json:"variant"`
}

type AddressInput struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

type PlaceOrderInput struct {
	Items    []OrderLineInput `json:"items"`
	Address  AddressInput     `json:"address"`
	Subtotal decimal.Decimal  `json:"subtotal"`
	Shipping decimal.Decimal  `json:"shipping"`
	Total    decimal.Decimal  `json:"total"`
}

func (in AddressInput) validate() (domain.Address, error) {
	fullName, ok := validate.Name(in.FullName)
	if !ok {
		return domain.Address{}, apperr.Validation("address: full name is required")
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return domain.Address{}, apperr.Validation("address: invalid phone number")
	}
	pincode, ok := validate.Pincode(in.Pincode)
	if !ok {
		return domain.Address{}, apperr.Validation("address: invalid pincode")
	}
	line := strings.TrimSpace(in.AddressLine)
	city := strings.TrimSpace(in.City)
	state := strings.TrimSpace(in.State)
	if len(line) < 10 || city == "" || state == "" {
		return domain.Address{}, apperr.Validation("address: complete address line, city and state are required")
	}
	return domain.Address{
		FullName:    fullName,
		Phone:       phone,
		AddressLine: line,
		City:        city,
		State:       state,
		Pincode:     pincode,
	}, nil
}

// Place creates the order from a cart snapshot: address, order header (status
// PENDING), line items priced server-side, and the conditional stock
// decrements, all in one transaction. The returned server/client totals let
// the handler audit a tampered client subtotal; the server figure is what
// gets persisted.
func (s *OrderService) Place(userID string, in PlaceOrderInput) (string, decimal.Decimal, decimal.Decimal, error) {
	zero := decimal.Zero
	if len(in.Items) == 0 {
		return "", zero, zero, apperr.Validation("order has no items")
	}
	addr, err := in.Address.validate()
	if err != nil {
		return "", zero, zero, err
	}
	if in.Shipping.IsNegative() {
		return "", zero, zero, apperr.Validation("shipping cannot be negative")
	}

	// Price every line from the products table. The product price at this
	// moment becomes the immutable snapshot on the order item.
	subtotal := decimal.Zero
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if _, ok := validate.ID(line.ProductID); !ok {
			return "", zero, zero, apperr.Validation("invalid product id %q", line.ProductID)
		}
		qty := validate.Qty(line.Quantity)

		p, err := s.Prods.Get(line.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return "", zero, zero, apperr.Validation("product %s is no longer available", line.ProductID)
		}
		if err != nil {
			return "", zero, zero, err
		}

		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Title:     p.Title,
			Qty:       qty,
			Price:     p.Price,
			Variant:   strings.TrimSpace(line.Variant),
		})
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	total := subtotal.Add(in.Shipping)
	snapshot, err := json.Marshal(items)
	if err != nil {
		return "", zero, zero, err
	}

	addr.ID = uuid.NewString()
	addr.UserID = userID

	o := domain.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		AddressID: addr.ID,
		ItemsJSON: string(snapshot),
		Subtotal:  subtotal,
		Shipping:  in.Shipping,
		Total:     total,
		Status:    domain.StatusPending,
	}

	if err := s.Orders.Create(o, addr, items); err != nil {
		if errors.Is(err, repos.ErrInsufficientStock) {
			return "", zero, zero, apperr.Validation("%s", err.Error())
		}
		return "", zero, zero, err
	}
	return o.ID, total, in.Total, nil
}

type OrderDetail struct {
	domain.Order
	Address *domain.Address    `json:"address,omitempty"`
	Items   []domain.OrderItem `json:"items"`
}

func (s *OrderService) detail(o domain.Order) (OrderDetail, error) {
	d := OrderDetail{Order: o}
	items, err := s.Orders.Items(o.ID)
	if err != nil {
		return OrderDetail{}, err
	}
	d.Items = items
	if o.AddressID != "" {
		if a, err := s.Orders.Address(o.AddressID); err == nil {
			d.Address = &a
		}
	}
	return d, nil
}

// Get enforces the read policy: the owning user or an ADMIN. Everyone else
// gets Forbidden, never the order and never a leaky 404.
func (s *OrderService) Get(orderID string, requester *domain.User) (OrderDetail, error) {
	o, err := s.Orders.Get(orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetail{}, apperr.NotFound("order")
	}
	if err != nil {
		return OrderDetail{}, err
	}
	if requester == nil {
		return OrderDetail{}, apperr.Unauthorized("login required")
	}
	if o.UserID != requester.ID && !requester.IsAdmin() {
		return OrderDetail{}, apperr.Forbidden("not your order")
	}
	return s.detail(o)
}

func (s *OrderService) ListForUser(userID string) ([]OrderDetail, error) {
	orders, err := s.Orders.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderDetail, 0, len(orders))
	for _, o := range orders {
		d, err := s.detail(o)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// SetStatus is the admin transition. Entering CANCELLED/REFUNDED from any
// other status restocks the line items atomically with the status write;
// every other transition is a plain update. Returns whether stock was
// released.
func (s *OrderService) SetStatus(orderID, newStatus string, requester *domain.User) (bool, error) {
	if !requester.IsAdmin() {
		return false, apperr.Forbidden("admin only")
	}
	if !domain.ValidStatus(newStatus) {
		return false, apperr.Validation("unknown status %q", newStatus)
	}
	if _, err := s.Orders.Get(orderID); errors.Is(err, sql.ErrNoRows) {
		return false, apperr.NotFound("order")
	} else if err != nil {
		return false, err
	}

	prev, err := s.Orders.UpdateStatus(orderID, newStatus)
	if err != nil {
		return false, err
	}
	return domain.ReleasesStock(prev, newStatus), nil
}
