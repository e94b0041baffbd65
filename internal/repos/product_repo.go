package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"zarika/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, title, COALESCE(description,'') AS description, price, stock,
  COALESCE(images_json,'[]') AS images_json, COALESCE(variants_json,'') AS variants_json,
  featured, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// Filter drives the public product listing.
type Filter struct {
	CategoryID string
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string // newest | price-asc | price-desc
	Limit      int
	Offset     int
}

func (f Filter) where() (string, []any) {
	where := `1=1`
	args := []any{}
	if f.CategoryID != "" {
		where += ` AND p.category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		where += ` AND (LOWER(p.title) LIKE LOWER(?) OR LOWER(p.description) LIKE LOWER(?) OR LOWER(c.name) LIKE LOWER(?))`
		args = append(args, like, like, like)
	}
	if f.MinPrice != nil {
		where += ` AND p.price >= ?`
		args = append(args, f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		where += ` AND p.price <= ?`
		args = append(args, f.MaxPrice.String())
	}
	return where, args
}

func (f Filter) orderBy() string {
	switch f.Sort {
	case "price-asc":
		return `p.price ASC`
	case "price-desc":
		return `p.price DESC`
	default:
		return `datetime(p.created_at) DESC`
	}
}

func (r *ProductRepo) Search(f Filter) ([]domain.Product, int, error) {
	where, args := f.where()

	var total int
	if err := r.db.Get(&total, `
	  SELECT COUNT(*) FROM products p JOIN categories c ON c.id = p.category_id
	  WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	sql := `
	  SELECT p.id, p.category_id, p.title, COALESCE(p.description,'') AS description,
	         p.price, p.stock, COALESCE(p.images_json,'[]') AS images_json,
	         COALESCE(p.variants_json,'') AS variants_json, p.featured,
	         p.created_at, COALESCE(p.updated_at,'') AS updated_at
	  FROM products p JOIN categories c ON c.id = p.category_id
	  WHERE ` + where + `
	  ORDER BY ` + f.orderBy() + `
	  LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	out := []domain.Product{}
	if err := r.db.Select(&out, sql, args...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ProductRepo) Featured(limit int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT`+productCols+` FROM products
	  WHERE featured = 1
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,category_id,title,description,price,stock,images_json,variants_json,featured,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.CategoryID, p.Title, p.Description, p.Price.String(), p.Stock, p.ImagesJSON, p.VariantsJSON, p.Featured)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET category_id=?, title=?, description=?, price=?, stock=?, images_json=?, variants_json=?, featured=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.CategoryID, p.Title, p.Description, p.Price.String(), p.Stock, p.ImagesJSON, p.VariantsJSON, p.Featured, p.ID)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *ProductRepo) Stock(id string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT stock FROM products WHERE id = ?`, id)
	return n, err
}
