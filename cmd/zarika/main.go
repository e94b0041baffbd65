package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"zarika/internal/config"
	"zarika/internal/http/handlers"
	applog "zarika/internal/log"
	"zarika/internal/payment"
	"zarika/internal/repos"
	"zarika/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	gateway := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentKeyID, cfg.PaymentKeySecret)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for handlers/log lines)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc, gateway)

	// Public catalog
	app.Get("/categories", deps.CategoryHandler.List)
	app.Get("/products", deps.ProductHandler.List)
	app.Get("/products/featured", deps.ProductHandler.Featured) // before :id
	app.Get("/products/:id", deps.ProductHandler.Detail)
	app.Get("/hero", deps.HeroHandler.List)

	// Auth (login throttled)
	app.Post("/auth/register", deps.AuthHandler.Register)
	app.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	app.Post("/auth/logout", deps.AuthHandler.Logout)

	// Orders
	app.Post("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.Place)
	app.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.List)
	app.Get("/orders/:id", deps.OrderHandler.Get)

	// Payments
	app.Post("/payment/order", handlers.RequireUser(authSvc), deps.PaymentHandler.CreateIntent)
	app.Post("/payment/verify", deps.PaymentHandler.Verify)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/dashboard", deps.AdminHandler.Dashboard)
	admin.Get("/customers", deps.AdminHandler.Customers)
	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Patch("/orders/:id", deps.AdminHandler.UpdateOrderStatus)
	admin.Post("/categories", deps.CategoryHandler.Create)
	admin.Patch("/categories/:id", deps.CategoryHandler.Update)
	admin.Delete("/categories/:id", deps.CategoryHandler.Delete)
	admin.Post("/products", deps.ProductHandler.Create)
	admin.Patch("/products/:id", deps.ProductHandler.Update)
	admin.Delete("/products/:id", deps.ProductHandler.Delete)
	admin.Post("/hero", deps.HeroHandler.Create)
	admin.Patch("/hero/:id", deps.HeroHandler.Update)
	admin.Delete("/hero/:id", deps.HeroHandler.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})
	log.Fatal(app.Listen(":" + cfg.Port))
}
