package repos

import (
	"zarika/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
	  SELECT
	    c.id, c.name, c.slug,
	    COALESCE(c.description,'') AS description,
	    COALESCE(c.image,'')       AS image,
	    COUNT(p.id)                AS product_count,
	    c.created_at, COALESCE(c.updated_at,'') AS updated_at
	  FROM categories c
	  LEFT JOIN products p ON p.category_id = c.id
	  GROUP BY c.id
	  ORDER BY datetime(c.created_at) DESC
	`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, slug, COALESCE(description,'') AS description, COALESCE(image,'') AS image,
	         0 AS product_count, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE id = ?
	`, id)
	return c, err
}

func (r *CategoryRepo) BySlug(slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, slug, COALESCE(description,'') AS description, COALESCE(image,'') AS image,
	         0 AS product_count, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE slug = ?
	`, slug)
	return c, err
}

func (r *CategoryRepo) SlugExists(slug string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM categories WHERE slug = ?`, slug); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CategoryRepo) ProductCount(id string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE category_id = ?`, id)
	return n, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id,name,slug,description,image,created_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	`, c.ID, c.Name, c.Slug, c.Description, c.Image)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	_, err := r.db.Exec(`
	  UPDATE categories
	  SET name=?, slug=?, description=?, image=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, c.Name, c.Slug, c.Description, c.Image, c.ID)
	return err
}

// Delete removes a category row. Callers must check ProductCount first; the
// FK is ON DELETE RESTRICT as a backstop.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
