package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Wishlist is the saved-items counterpart to the cart: an ordered id set with
// the same load-on-open / persist-on-mutation contract.
type Wishlist struct {
	path string
	ids  []string
}

func OpenWishlist(path string) (*Wishlist, error) {
	w := &Wishlist{path: path}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return w, nil
	}
	if err != nil {
		return nil, err
	}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &w.ids); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *Wishlist) persist() error {
	b, err := json.Marshal(w.ids)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(w.path, b, 0o644)
}

func (w *Wishlist) Has(productID string) bool {
	for _, id := range w.ids {
		if id == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Save(productID string) error {
	if w.Has(productID) {
		return nil
	}
	w.ids = append(w.ids, productID)
	return w.persist()
}

func (w *Wishlist) Unsave(productID string) error {
	for i, id := range w.ids {
		if id == productID {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			return w.persist()
		}
	}
	return nil
}

func (w *Wishlist) List() []string {
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}
