package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Slug         string `db:"slug" json:"slug"`
	Description  string `db:"description" json:"description,omitempty"`
	Image        string `db:"image" json:"image,omitempty"`
	ProductCount int    `db:"product_count" json:"productCount"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
	UpdatedAt    string `db:"updated_at" json:"-"`
}

type Product struct {
	ID           string          `db:"id" json:"id"`
	CategoryID   string          `db:"category_id" json:"categoryId"`
	Title        string          `db:"title" json:"title"`
	Description  string          `db:"description" json:"description"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Stock        int             `db:"stock" json:"stock"`
	ImagesJSON   string          `db:"images_json" json:"images"`
	VariantsJSON string          `db:"variants_json" json:"variants,omitempty"`
	Featured     bool            `db:"featured" json:"featured"`
	CreatedAt    string          `db:"created_at" json:"createdAt"`
	UpdatedAt    string          `db:"updated_at" json:"-"`
}

type HeroSlide struct {
	ID        string `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	Subtitle  string `db:"subtitle" json:"subtitle,omitempty"`
	Image     string `db:"image" json:"image"`
	CTAText   string `db:"cta_text" json:"ctaText,omitempty"`
	CTALink   string `db:"cta_link" json:"ctaLink,omitempty"`
	Position  int    `db:"position" json:"order"`
	IsActive  bool   `db:"is_active" json:"isActive"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
