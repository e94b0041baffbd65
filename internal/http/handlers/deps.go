package handlers

import (
	"github.com/jmoiron/sqlx"

	"zarika/internal/config"
	"zarika/internal/payment"
	"zarika/internal/repos"
	"zarika/internal/services"
)

type Deps struct {
	AuthHandler     *AuthHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	HeroHandler     *HeroHandler
	OrderHandler    *OrderHandler
	PaymentHandler  *PaymentHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, gw payment.Gateway) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	heroRepo := repos.NewHeroRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, heroRepo)
	orderSvc := services.NewOrderService(orderRepo, prodRepo)
	paySvc := services.NewPaymentService(gw, orderRepo, cfg.PaymentKeySecret)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: auth},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		HeroHandler:     &HeroHandler{Catalog: catalogSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		PaymentHandler:  &PaymentHandler{Payments: paySvc},
		AdminHandler:    &AdminHandler{OrderSvc: orderSvc, OrderRepo: orderRepo, Users: auth.Users},
	}
}
