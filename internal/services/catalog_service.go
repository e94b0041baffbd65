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

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	Hero  *repos.HeroRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, hero *repos.HeroRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Hero: hero}
}

// ---------- public reads ----------

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

type ProductQuery struct {
	CategorySlug string
	Search       string
	MinPrice     string
	MaxPrice     string
	Sort         string
	Page         int
	Limit        int
}

type ProductPage struct {
	Products   []domain.Product `json:"products"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

func (s *CatalogService) ListProducts(q ProductQuery) (ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 12
	}

	f := repos.Filter{
		Search: strings.TrimSpace(q.Search),
		Sort:   q.Sort,
		Limit:  q.Limit,
		Offset: (q.Page - 1) * q.Limit,
	}
	if q.CategorySlug != "" {
		cat, err := s.Cats.BySlug(q.CategorySlug)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// unknown category filter matches nothing
				return ProductPage{Products: []domain.Product{}, Page: q.Page, Limit: q.Limit}, nil
			}
			return ProductPage{}, err
		}
		f.CategoryID = cat.ID
	}
	if q.MinPrice != "" {
		if d, err := decimal.NewFromString(q.MinPrice); err == nil {
			f.MinPrice = &d
		}
	}
	if q.MaxPrice != "" {
		if d, err := decimal.NewFromString(q.MaxPrice); err == nil {
			f.MaxPrice = &d
		}
	}

	prods, total, err := s.Prods.Search(f)
	if err != nil {
		return ProductPage{}, err
	}
	pages := total / q.Limit
	if total%q.Limit > 0 {
		pages++
	}
	return ProductPage{Products: prods, Page: q.Page, Limit: q.Limit, Total: total, TotalPages: pages}, nil
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("product")
	}
	return p, err
}

func (s *CatalogService) FeaturedProducts(limit int) ([]domain.Product, error) {
	if limit <= 0 || limit > 24 {
		limit = 8
	}
	return s.Prods.Featured(limit)
}

func (s *CatalogService) HeroSlides() ([]domain.HeroSlide, error) {
	return s.Hero.ListActive()
}

// ---------- admin: categories ----------

type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (s *CatalogService) CreateCategory(in CategoryInput) (domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	slug, okSlug := validate.Slug(in.Slug)
	if name == "" || !okSlug {
		return domain.Category{}, apperr.Validation("name and slug are required (slug: lower-case, dash separated)")
	}
	exists, err := s.Cats.SlugExists(slug)
	if err != nil {
		return domain.Category{}, err
	}
	if exists {
		return domain.Category{}, apperr.Conflict("category with slug %q already exists", slug)
	}
	c := domain.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
	}
	if err := s.Cats.Create(c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(id string, in CategoryInput) (domain.Category, error) {
	c, err := s.Cats.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, apperr.NotFound("category")
	}
	if err != nil {
		return domain.Category{}, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	if in.Slug != "" && in.Slug != c.Slug {
		slug, ok := validate.Slug(in.Slug)
		if !ok {
			return domain.Category{}, apperr.Validation("invalid slug")
		}
		exists, err := s.Cats.SlugExists(slug)
		if err != nil {
			return domain.Category{}, err
		}
		if exists {
			return domain.Category{}, apperr.Conflict("category with slug %q already exists", slug)
		}
		c.Slug = slug
	}
	if in.Description != "" {
		c.Description = strings.TrimSpace(in.Description)
	}
	if in.Image != "" {
		c.Image = strings.TrimSpace(in.Image)
	}
	if err := s.Cats.Update(c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

// DeleteCategory refuses to cascade: a category with products must be emptied
// (reassign or delete the products) before it can go.
func (s *CatalogService) DeleteCategory(id string) error {
	if _, err := s.Cats.Get(id); errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("category")
	} else if err != nil {
		return err
	}
	n, err := s.Cats.ProductCount(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Validation("cannot delete category with %d products; move or delete products first", n)
	}
	return s.Cats.Delete(id)
}

// ---------- admin: products ----------

type ProductInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       string          `json:"price"`
	Stock       *int            `json:"stock"`
	CategoryID  string          `json:"categoryId"`
	Images      []string        `json:"images"`
	Variants    json.RawMessage `json:"variants"`
	Featured    *bool           `json:"featured"`
}

func (s *CatalogService) CreateProduct(in ProductInput) (domain.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Price == "" || in.CategoryID == "" {
		return domain.Product{}, apperr.Validation("title, price and categoryId are required")
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil || price.IsNegative() || price.IsZero() {
		return domain.Product{}, apperr.Validation("price must be a positive number")
	}
	if _, err := s.Cats.Get(in.CategoryID); errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.Validation("unknown category %q", in.CategoryID)
	} else if err != nil {
		return domain.Product{}, err
	}

	stock := 0
	if in.Stock != nil {
		if *in.Stock < 0 {
			return domain.Product{}, apperr.Validation("stock cannot be negative")
		}
		stock = *in.Stock
	}
	images, _ := json.Marshal(in.Images)
	variants := ""
	if len(in.Variants) > 0 {
		variants = string(in.Variants)
	}

	p := domain.Product{
		ID:           uuid.NewString(),
		CategoryID:   in.CategoryID,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Price:        price,
		Stock:        stock,
		ImagesJSON:   string(images),
		VariantsJSON: variants,
		Featured:     in.Featured != nil && *in.Featured,
	}
	if err := s.Prods.Create(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(id string, in ProductInput) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("product")
	}
	if err != nil {
		return domain.Product{}, err
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		p.Title = t
	}
	if in.Description != "" {
		p.Description = strings.TrimSpace(in.Description)
	}
	if in.Price != "" {
		price, err := decimal.NewFromString(in.Price)
		if err != nil || price.IsNegative() || price.IsZero() {
			return domain.Product{}, apperr.Validation("price must be a positive number")
		}
		p.Price = price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return domain.Product{}, apperr.Validation("stock cannot be negative")
		}
		p.Stock = *in.Stock
	}
	if in.CategoryID != "" && in.CategoryID != p.CategoryID {
		if _, err := s.Cats.Get(in.CategoryID); errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, apperr.Validation("unknown category %q", in.CategoryID)
		} else if err != nil {
			return domain.Product{}, err
		}
		p.CategoryID = in.CategoryID
	}
	if in.Images != nil {
		images, _ := json.Marshal(in.Images)
		p.ImagesJSON = string(images)
	}
	if len(in.Variants) > 0 {
		p.VariantsJSON = string(in.Variants)
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if err := s.Prods.Update(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(id string) error {
	if _, err := s.Prods.Get(id); errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("product")
	} else if err != nil {
		return err
	}
	return s.Prods.Delete(id)
}

// ---------- admin: hero slides ----------

type HeroInput struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
	Order    *int   `json:"order"`
	IsActive *bool  `json:"isActive"`
}

func (s *CatalogService) CreateHeroSlide(in HeroInput) (domain.HeroSlide, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Image) == "" {
		return domain.HeroSlide{}, apperr.Validation("title and image are required")
	}
	sl := domain.HeroSlide{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(in.Title),
		Subtitle: strings.TrimSpace(in.Subtitle),
		Image:    strings.TrimSpace(in.Image),
		CTAText:  strings.TrimSpace(in.CTAText),
		CTALink:  strings.TrimSpace(in.CTALink),
		IsActive: in.IsActive == nil || *in.IsActive,
	}
	if in.Order != nil {
		sl.Position = *in.Order
	}
	if err := s.Hero.Create(sl); err != nil {
		return domain.HeroSlide{}, err
	}
	return sl, nil
}

func (s *CatalogService) UpdateHeroSlide(id string, in HeroInput) (domain.HeroSlide, error) {
	slides, err := s.Hero.ListAll()
	if err != nil {
		return domain.HeroSlide{}, err
	}
	var cur *domain.HeroSlide
	for i := range slides {
		if slides[i].ID == id {
			cur = &slides[i]
			break
		}
	}
	if cur == nil {
		return domain.HeroSlide{}, apperr.NotFound("hero slide")
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		cur.Title = t
	}
	if in.Subtitle != "" {
		cur.Subtitle = strings.TrimSpace(in.Subtitle)
	}
	if img := strings.TrimSpace(in.Image); img != "" {
		cur.Image = img
	}
	if in.CTAText != "" {
		cur.CTAText = strings.TrimSpace(in.CTAText)
	}
	if in.CTALink != "" {
		cur.CTALink = strings.TrimSpace(in.CTALink)
	}
	if in.Order != nil {
		cur.Position = *in.Order
	}
	if in.IsActive != nil {
		cur.IsActive = *in.IsActive
	}
	if err := s.Hero.Update(*cur); err != nil {
		return domain.HeroSlide{}, err
	}
	return *cur, nil
}

func (s *CatalogService) DeleteHeroSlide(id string) error {
	return s.Hero.Delete(id)
}
