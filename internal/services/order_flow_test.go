package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"zarika/internal/apperr"
	"zarika/internal/repos"
	"zarika/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE categories(id TEXT PRIMARY KEY, name TEXT, slug TEXT UNIQUE, description TEXT,
	  image TEXT, created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT);
	CREATE TABLE products(id TEXT PRIMARY KEY, category_id TEXT, title TEXT, description TEXT,
	  price NUMERIC, stock INTEGER, images_json TEXT, variants_json TEXT, featured INTEGER DEFAULT 0,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT);
	CREATE TABLE users(id TEXT PRIMARY KEY, email TEXT UNIQUE, name TEXT, phone TEXT,
	  password_hash TEXT, role TEXT, created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE sessions(id TEXT PRIMARY KEY, user_id TEXT, created_at TEXT, last_seen TEXT);
	CREATE TABLE addresses(id TEXT PRIMARY KEY, user_id TEXT, full_name TEXT, phone TEXT,
	  address_line TEXT, city TEXT, state TEXT, pincode TEXT, created_at TEXT);
	CREATE TABLE orders(id TEXT PRIMARY KEY, user_id TEXT, address_id TEXT, items_json TEXT,
	  subtotal NUMERIC, shipping NUMERIC, total NUMERIC, status TEXT,
	  gateway_order_id TEXT DEFAULT '', payment_id TEXT DEFAULT '', payment_status TEXT DEFAULT 'UNPAID',
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT);
	CREATE TABLE order_items(order_id TEXT, product_id TEXT, qty INTEGER, price NUMERIC, variant TEXT);

	INSERT INTO categories(id,name,slug) VALUES ('cat-silk','Silk Sarees','silk-sarees');
	INSERT INTO products(id,category_id,title,price,stock,images_json) VALUES
	  ('prd-tissue','cat-silk','Gold Tissue Silk Saree',18500,10,'[]'),
	  ('prd-blouse','cat-silk','Embroidered Blouse',6500,2,'[]');
	INSERT INTO users(id,email,name,password_hash,role) VALUES
	  ('u-meera','meera@zarika.test','Meera','x','CUSTOMER'),
	  ('u-admin','admin@zarika.test','Admin','x','ADMIN');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func testAddress() services.AddressInput {
	return services.AddressInput{
		FullName:    "Meera Iyer",
		Phone:       "9876543210",
		AddressLine: "12 Temple Street, Mylapore",
		City:        "Chennai",
		State:       "Tamil Nadu",
		Pincode:     "600004",
	}
}

func TestPlaceOrder(t *testing.T) {
	db := memdb(t)
	orderRepo := repos.NewOrderRepo(db)
	prodRepo := repos.NewProductRepo(db)
	svc := services.NewOrderService(orderRepo, prodRepo)

	in := services.PlaceOrderInput{
		Items: []services.OrderLineInput{
			{ProductID: "prd-tissue", Quantity: 2, Price: decimal.NewFromInt(18500)},
			{ProductID: "prd-blouse", Quantity: 1, Price: decimal.NewFromInt(6500), Variant: "Size M"},
		},
		Address:  testAddress(),
		Shipping: decimal.NewFromInt(150),
		Total:    decimal.NewFromInt(43650),
	}

	oid, serverTotal, clientTotal, err := svc.Place("u-meera", in)
	require.NoError(t, err)
	require.NotEmpty(t, oid)
	require.True(t, serverTotal.Equal(decimal.NewFromInt(43650)), "server total %s", serverTotal)
	require.True(t, serverTotal.Equal(clientTotal))

	o, err := orderRepo.Get(oid)
	require.NoError(t, err)
	require.Equal(t, "PENDING", o.Status)
	require.Equal(t, "UNPAID", o.PaymentStatus)

	// total == subtotal + shipping, and subtotal == sum(price*qty)
	require.True(t, o.Total.Equal(o.Subtotal.Add(o.Shipping)))
	items, err := orderRepo.Items(oid)
	require.NoError(t, err)
	require.Len(t, items, 2)
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	require.True(t, o.Subtotal.Equal(sum))

	// stock decremented for each purchased product
	stock, _ := prodRepo.Stock("prd-tissue")
	require.Equal(t, 8, stock)
	stock, _ = prodRepo.Stock("prd-blouse")
	require.Equal(t, 1, stock)

	// shipping address persisted
	addr, err := orderRepo.Address(o.AddressID)
	require.NoError(t, err)
	require.Equal(t, "600004", addr.Pincode)
}

func TestPlaceOrder_RepricesServerSide(t *testing.T) {
	db := memdb(t)
	svc := services.NewOrderService(repos.NewOrderRepo(db), repos.NewProductRepo(db))

	// Tampered client price: 1 instead of the real 18500.
	in := services.PlaceOrderInput{
		Items:   []services.OrderLineInput{{ProductID: "prd-tissue", Quantity: 1, Price: decimal.NewFromInt(1)}},
		Address: testAddress(),
		Total:   decimal.NewFromInt(1),
	}
	oid, serverTotal, clientTotal, err := svc.Place("u-meera", in)
	require.NoError(t, err)
	require.True(t, serverTotal.Equal(decimal.NewFromInt(18500)))
	require.False(t, serverTotal.Equal(clientTotal))

	o, err := repos.NewOrderRepo(db).Get(oid)
	require.NoError(t, err)
	require.True(t, o.Total.Equal(decimal.NewFromInt(18500)), "persisted total must be the server figure")
}

func TestPlaceOrder_InsufficientStockRollsBack(t *testing.T) {
	db := memdb(t)
	orderRepo := repos.NewOrderRepo(db)
	prodRepo := repos.NewProductRepo(db)
	svc := services.NewOrderService(orderRepo, prodRepo)

	// Second line needs 5, only 2 in stock: the whole order must roll back,
	// including the first line's already-applied decrement.
	in := services.PlaceOrderInput{
		Items: []services.OrderLineInput{
			{ProductID: "prd-tissue", Quantity: 3},
			{ProductID: "prd-blouse", Quantity: 5},
		},
		Address: testAddress(),
	}
	_, _, _, err := svc.Place("u-meera", in)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeValidation), "got %v", err)

	stock, _ := prodRepo.Stock("prd-tissue")
	require.Equal(t, 10, stock, "partial decrement leaked")
	stock, _ = prodRepo.Stock("prd-blouse")
	require.Equal(t, 2, stock)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM orders`))
	require.Zero(t, n, "orphaned order row")
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM order_items`))
	require.Zero(t, n)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	db := memdb(t)
	svc := services.NewOrderService(repos.NewOrderRepo(db), repos.NewProductRepo(db))

	in := services.PlaceOrderInput{
		Items:   []services.OrderLineInput{{ProductID: "prd-gone", Quantity: 1}},
		Address: testAddress(),
	}
	_, _, _, err := svc.Place("u-meera", in)
	require.True(t, apperr.Is(err, apperr.CodeValidation), "got %v", err)
}

func TestGetOrder_Authz(t *testing.T) {
	db := memdb(t)
	orderRepo := repos.NewOrderRepo(db)
	svc := services.NewOrderService(orderRepo, repos.NewProductRepo(db))

	in := services.PlaceOrderInput{
		Items:   []services.OrderLineInput{{ProductID: "prd-tissue", Quantity: 1}},
		Address: testAddress(),
	}
	oid, _, _, err := svc.Place("u-meera", in)
	require.NoError(t, err)

	userRepo := repos.NewUserRepo(db)
	meera, err := userRepo.ByID("u-meera")
	require.NoError(t, err)
	admin, err := userRepo.ByID("u-admin")
	require.NoError(t, err)

	// owner reads fine
	d, err := svc.Get(oid, meera)
	require.NoError(t, err)
	require.Len(t, d.Items, 1)

	// admin reads fine
	_, err = svc.Get(oid, admin)
	require.NoError(t, err)

	// stranger is Forbidden, not NotFound
	stranger := *meera
	stranger.ID = "u-other"
	_, err = svc.Get(oid, &stranger)
	require.True(t, apperr.Is(err, apperr.CodeForbidden), "got %v", err)

	// unknown order is NotFound even for admin
	_, err = svc.Get("no-such-order", admin)
	require.True(t, apperr.Is(err, apperr.CodeNotFound), "got %v", err)
}
