package handlers

import (
	"modaville/internal/config"
	"modaville/internal/payment"
	"modaville/internal/repos"
	"modaville/internal/services"
	"modaville/internal/tasks"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	InvoiceHandler  *InvoiceHandler
	ReviewHandler   *ReviewHandler
	WishlistHandler *WishlistHandler
	AdminHandler    *AdminHandler
	PaymentHandler  *PaymentHandler

	Auth  *services.AuthService
	Audit *services.AuditService
}

func NewDeps(db *sqlx.DB, cfg config.Config, runner *tasks.Runner) *Deps {
	userRepo := repos.NewUserRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	invoiceRepo := repos.NewInvoiceRepo(db)
	auditRepo := repos.NewAuditRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	wishRepo := repos.NewWishlistRepo(db)

	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	invoiceSvc := services.NewInvoiceService(invoiceRepo, orderRepo)
	orderSvc := services.NewOrderService(orderRepo, prodRepo, cartRepo, invoiceSvc, runner)
	reviewSvc := services.NewReviewService(reviewRepo, prodRepo)
	wishSvc := services.NewWishlistService(wishRepo)
	staffSvc := services.NewStaffService(userRepo)
	auditSvc := services.NewAuditService(auditRepo, runner)

	gateway := payment.New(cfg.Payment)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: authSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc, Cfg: cfg},
		CartHandler:     &CartHandler{Cart: cartSvc},
		OrderHandler:    &OrderHandler{Order: orderSvc},
		InvoiceHandler:  &InvoiceHandler{Invoices: invoiceSvc},
		ReviewHandler:   &ReviewHandler{Reviews: reviewSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
		AdminHandler:    &AdminHandler{Staff: staffSvc, Audit: auditSvc},
		PaymentHandler:  &PaymentHandler{Gateway: gateway, Orders: orderSvc},

		Auth:  authSvc,
		Audit: auditSvc,
	}
}
