// Package cart is the client-held shopping state: a file-backed store with an
// explicit lifecycle (load on open, persist on every mutation). It is not
// server-authoritative; checkout sends a snapshot of it to POST /orders and
// the server re-prices the lines.
package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

type Line struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	Variant   string          `json:"variant,omitempty"`
	Stock     int             `json:"stock"` // known stock at add time, used to clamp
}

type Store struct {
	path  string
	lines []Line
}

// Open loads the cart from path. A missing file is an empty cart, not an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &s.lines); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) persist() error {
	b, err := json.MarshalIndent(s.lines, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *Store) find(productID, variant string) int {
	for i, l := range s.lines {
		if l.ProductID == productID && l.Variant == variant {
			return i
		}
	}
	return -1
}

func clamp(qty, stock int) int {
	if qty < 1 {
		return 1
	}
	if stock > 0 && qty > stock {
		return stock
	}
	return qty
}

// Add merges by (productID, variant); quantities are clamped to known stock.
func (s *Store) Add(l Line) error {
	if l.Qty < 1 {
		l.Qty = 1
	}
	if i := s.find(l.ProductID, l.Variant); i >= 0 {
		s.lines[i].Qty = clamp(s.lines[i].Qty+l.Qty, s.lines[i].Stock)
	} else {
		l.Qty = clamp(l.Qty, l.Stock)
		s.lines = append(s.lines, l)
	}
	return s.persist()
}

// SetQty updates a line quantity; zero or negative removes the line.
func (s *Store) SetQty(productID, variant string, qty int) error {
	i := s.find(productID, variant)
	if i < 0 {
		return nil
	}
	if qty <= 0 {
		return s.Remove(productID, variant)
	}
	s.lines[i].Qty = clamp(qty, s.lines[i].Stock)
	return s.persist()
}

func (s *Store) Remove(productID, variant string) error {
	i := s.find(productID, variant)
	if i < 0 {
		return nil
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return s.persist()
}

func (s *Store) Clear() error {
	s.lines = nil
	return s.persist()
}

func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) TotalItems() int {
	n := 0
	for _, l := range s.lines {
		n += l.Qty
	}
	return n
}

func (s *Store) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return total
}

// CheckoutItem is the wire shape POST /orders expects per line.
type CheckoutItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Variant   string          `json:"variant,omitempty"`
}

// CheckoutItems builds the order payload item list from the current cart.
func (s *Store) CheckoutItems() []CheckoutItem {
	out := make([]CheckoutItem, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, CheckoutItem{
			ProductID: l.ProductID,
			Quantity:  l.Qty,
			Price:     l.Price,
			Variant:   l.Variant,
		})
	}
	return out
}
