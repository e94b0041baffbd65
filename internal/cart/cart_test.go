package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func tissueLine(qty int) Line {
	return Line{
		ProductID: "prd-tissue",
		Title:     "Gold Tissue Silk Saree",
		Price:     decimal.NewFromInt(18500),
		Qty:       qty,
		Stock:     10,
	}
}

func TestOpenMissingFileIsEmptyCart(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "cart.json"))
	require.NoError(t, err)
	require.Empty(t, s.Lines())
	require.Equal(t, 0, s.TotalItems())
	require.True(t, s.Subtotal().IsZero())
}

func TestAddMergesAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Add(tissueLine(2)))
	require.NoError(t, s.Add(tissueLine(3)))
	require.Len(t, s.Lines(), 1, "same product and variant merges into one line")
	require.Equal(t, 5, s.TotalItems())

	// Merging past known stock clamps to it.
	require.NoError(t, s.Add(tissueLine(20)))
	require.Equal(t, 10, s.Lines()[0].Qty)

	// A different variant is its own line.
	withBlouse := tissueLine(1)
	withBlouse.Variant = "with-blouse"
	require.NoError(t, s.Add(withBlouse))
	require.Len(t, s.Lines(), 2)

	require.Equal(t, "203500", s.Subtotal().String())
}

func TestSetQtyAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(tissueLine(4)))

	require.NoError(t, s.SetQty("prd-tissue", "", 2))
	require.Equal(t, 2, s.Lines()[0].Qty)

	require.NoError(t, s.SetQty("prd-tissue", "", 99))
	require.Equal(t, 10, s.Lines()[0].Qty, "quantity clamps to known stock")

	// Zero removes the line; unknown lines are a no-op.
	require.NoError(t, s.SetQty("prd-tissue", "", 0))
	require.Empty(t, s.Lines())
	require.NoError(t, s.SetQty("prd-nope", "", 3))
	require.NoError(t, s.Remove("prd-nope", ""))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(tissueLine(2)))

	reopened, err := Open(path)
	require.NoError(t, err)
	require.Len(t, reopened.Lines(), 1)
	require.Equal(t, 2, reopened.Lines()[0].Qty)
	require.True(t, reopened.Lines()[0].Price.Equal(decimal.NewFromInt(18500)))

	require.NoError(t, reopened.Clear())
	again, err := Open(path)
	require.NoError(t, err)
	require.Empty(t, again.Lines())
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Open(path)
	require.Error(t, err)
}

func TestCheckoutItems(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "cart.json"))
	require.NoError(t, err)
	require.NoError(t, s.Add(tissueLine(2)))
	jhumka := Line{ProductID: "prd-jhumka", Price: decimal.NewFromInt(2200), Qty: 1, Stock: 25}
	require.NoError(t, s.Add(jhumka))

	items := s.CheckoutItems()
	require.Len(t, items, 2)
	require.Equal(t, "prd-tissue", items[0].ProductID)
	require.Equal(t, 2, items[0].Quantity)
	require.True(t, items[0].Price.Equal(decimal.NewFromInt(18500)))
}

func TestWishlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishlist.json")
	w, err := OpenWishlist(path)
	require.NoError(t, err)

	require.NoError(t, w.Save("prd-kanjivaram"))
	require.NoError(t, w.Save("prd-jhumka"))
	require.NoError(t, w.Save("prd-kanjivaram"), "saving twice is a no-op")
	require.Equal(t, []string{"prd-kanjivaram", "prd-jhumka"}, w.List())
	require.True(t, w.Has("prd-jhumka"))

	reopened, err := OpenWishlist(path)
	require.NoError(t, err)
	require.Equal(t, w.List(), reopened.List())

	require.NoError(t, reopened.Unsave("prd-kanjivaram"))
	require.Equal(t, []string{"prd-jhumka"}, reopened.List())
	require.False(t, reopened.Has("prd-kanjivaram"))
}
