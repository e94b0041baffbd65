package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"zarika/internal/apperr"
	"zarika/internal/repos"
	"zarika/internal/services"
)

func catalogSvc(t *testing.T) (*services.CatalogService, *sqlx.DB) {
	t.Helper()
	db := memdb(t)
	_, err := db.Exec(`
	  CREATE TABLE hero_slides(id TEXT PRIMARY KEY, title TEXT, subtitle TEXT, image TEXT,
	    cta_text TEXT, cta_link TEXT, position INTEGER DEFAULT 0, is_active INTEGER DEFAULT 1,
	    created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	`)
	require.NoError(t, err)
	return services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db), repos.NewHeroRepo(db)), db
}

func TestListProducts_Filters(t *testing.T) {
	svc, _ := catalogSvc(t)

	page, err := svc.ListProducts(services.ProductQuery{CategorySlug: "silk-sarees"})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	require.Equal(t, 1, page.TotalPages)

	page, err = svc.ListProducts(services.ProductQuery{Search: "tissue"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "prd-tissue", page.Products[0].ID)

	page, err = svc.ListProducts(services.ProductQuery{MinPrice: "10000"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)

	// Unknown category slug matches nothing rather than erroring.
	page, err = svc.ListProducts(services.ProductQuery{CategorySlug: "no-such-category"})
	require.NoError(t, err)
	require.Equal(t, 0, page.Total)
	require.Empty(t, page.Products)
}

func TestGetProduct_Missing(t *testing.T) {
	svc, _ := catalogSvc(t)
	_, err := svc.GetProduct("nope")
	require.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestCreateCategory(t *testing.T) {
	svc, _ := catalogSvc(t)

	c, err := svc.CreateCategory(services.CategoryInput{Name: "Cotton Sarees", Slug: "cotton-sarees"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)

	_, err = svc.CreateCategory(services.CategoryInput{Name: "Dup", Slug: "cotton-sarees"})
	require.True(t, apperr.Is(err, apperr.CodeConflict), "got %v", err)

	_, err = svc.CreateCategory(services.CategoryInput{Name: "Bad Slug", Slug: "Not A Slug"})
	require.True(t, apperr.Is(err, apperr.CodeValidation), "got %v", err)
}

func TestDeleteCategory_RefusesWhileProductsExist(t *testing.T) {
	svc, db := catalogSvc(t)

	err := svc.DeleteCategory("cat-silk")
	require.True(t, apperr.Is(err, apperr.CodeValidation), "got %v", err)
	require.Contains(t, err.Error(), "2 products")

	require.NoError(t, svc.DeleteProduct("prd-tissue"))
	require.NoError(t, svc.DeleteProduct("prd-blouse"))
	require.NoError(t, svc.DeleteCategory("cat-silk"))

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM categories`))
	require.Equal(t, 0, n)

	require.True(t, apperr.Is(svc.DeleteCategory("cat-silk"), apperr.CodeNotFound))
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, _ := catalogSvc(t)

	_, err := svc.CreateProduct(services.ProductInput{Title: "No Price", CategoryID: "cat-silk"})
	require.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.CreateProduct(services.ProductInput{Title: "Bad Price", Price: "-5", CategoryID: "cat-silk"})
	require.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.CreateProduct(services.ProductInput{Title: "Bad Cat", Price: "1200", CategoryID: "cat-nope"})
	require.True(t, apperr.Is(err, apperr.CodeValidation))

	stock := 4
	p, err := svc.CreateProduct(services.ProductInput{
		Title:      "Mysore Silk Saree",
		Price:      "12750.50",
		Stock:      &stock,
		CategoryID: "cat-silk",
		Images:     []string{"/img/mysore-1.jpg"},
	})
	require.NoError(t, err)
	require.Equal(t, "12750.5", p.Price.String())
	require.Equal(t, 4, p.Stock)

	got, err := svc.GetProduct(p.ID)
	require.NoError(t, err)
	require.True(t, p.Price.Equal(got.Price))
}

func TestUpdateProduct_PartialPatch(t *testing.T) {
	svc, _ := catalogSvc(t)

	featured := true
	p, err := svc.UpdateProduct("prd-tissue", services.ProductInput{Price: "19000", Featured: &featured})
	require.NoError(t, err)
	require.Equal(t, "19000", p.Price.String())
	require.True(t, p.Featured)
	require.Equal(t, "Gold Tissue Silk Saree", p.Title, "untouched fields keep their values")
	require.Equal(t, 10, p.Stock)

	_, err = svc.UpdateProduct("prd-tissue", services.ProductInput{Price: "zero rupees"})
	require.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestHeroSlides(t *testing.T) {
	svc, _ := catalogSvc(t)

	_, err := svc.CreateHeroSlide(services.HeroInput{Title: "No Image"})
	require.True(t, apperr.Is(err, apperr.CodeValidation))

	pos2 := 2
	s1, err := svc.CreateHeroSlide(services.HeroInput{Title: "Wedding Edit", Image: "/img/hero-1.jpg", Order: &pos2})
	require.NoError(t, err)
	pos1 := 1
	s2, err := svc.CreateHeroSlide(services.HeroInput{Title: "Festive Sale", Image: "/img/hero-2.jpg", Order: &pos1})
	require.NoError(t, err)

	slides, err := svc.HeroSlides()
	require.NoError(t, err)
	require.Len(t, slides, 2)
	require.Equal(t, s2.ID, slides[0].ID, "slides come back in position order")

	off := false
	_, err = svc.UpdateHeroSlide(s1.ID, services.HeroInput{IsActive: &off})
	require.NoError(t, err)

	slides, err = svc.HeroSlides()
	require.NoError(t, err)
	require.Len(t, slides, 1)

	require.NoError(t, svc.DeleteHeroSlide(s1.ID))
	_, err = svc.UpdateHeroSlide(s1.ID, services.HeroInput{Title: "x"})
	require.True(t, apperr.Is(err, apperr.CodeNotFound))
}
