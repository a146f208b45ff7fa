package handlers

import (
	"time"

	"modaville/internal/domain"
	applog "modaville/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RegisterRoutes wires the full HTTP surface onto the app.
func RegisterRoutes(app *fiber.App, d *Deps) {
	api := app.Group("/api", AuditTrail(d.Audit))

	// Auth (login throttled)
	api.Post("/auth/register", d.AuthHandler.Register)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, retry later"})
		},
	}), d.AuthHandler.Login)

	// Catalog
	api.Get("/getallsp", d.ProductHandler.List)
	api.Get("/getsp/:id", d.ProductHandler.Get)
	api.Get("/categories", d.ProductHandler.Categories)
	api.Post("/createsp", RequirePermission(d.Auth, domain.PermManageProduct), d.ProductHandler.Create)
	api.Put("/updatesp/:id", RequirePermission(d.Auth, domain.PermManageProduct), d.ProductHandler.Update)
	api.Delete("/deletesp/:id", RequirePermission(d.Auth, domain.PermManageProduct), d.ProductHandler.Delete)

	// Cart
	cart := api.Group("/cart", RequireAuth(d.Auth))
	cart.Get("/", d.CartHandler.View)
	cart.Post("/", d.CartHandler.Add)
	cart.Put("/", d.CartHandler.Update)
	cart.Delete("/", d.CartHandler.Remove)
	cart.Post("/sync", d.CartHandler.Sync)

	// Orders
	api.Post("/addOrder", RequireAuth(d.Auth), d.OrderHandler.Create)
	api.Get("/allOrders", RequirePermission(d.Auth, domain.PermManageOrder), d.OrderHandler.ListAll)
	api.Get("/myOrders", RequireAuth(d.Auth), d.OrderHandler.ListMine)
	api.Put("/updateOrder/:code", RequirePermission(d.Auth, domain.PermManageOrder), d.OrderHandler.UpdateStatus)
	api.Put("/approveOrder/:code", RequirePermission(d.Auth, domain.PermManageOrder), d.OrderHandler.Approve)
	api.Post("/order/track", d.OrderHandler.Track)
	api.Put("/order/cancel/:code", RequireAuth(d.Auth), d.OrderHandler.Cancel)

	// Invoices
	inv := api.Group("/invoices", RequirePermission(d.Auth, domain.PermManageInvoice))
	inv.Get("/", d.InvoiceHandler.List)
	inv.Get("/:id", d.InvoiceHandler.Get)
	inv.Post("/", d.InvoiceHandler.Create)
	inv.Put("/:id", d.InvoiceHandler.Update)
	inv.Post("/cancel/:id", d.InvoiceHandler.Cancel)

	// Reviews & wishlist
	api.Get("/reviews/:productId", d.ReviewHandler.List)
	api.Post("/reviews", RequireAuth(d.Auth), d.ReviewHandler.Submit)
	api.Put("/reviews/moderate", RequirePermission(d.Auth, domain.PermModerateReview), d.ReviewHandler.Moderate)
	api.Delete("/reviews/:productId", RequireAuth(d.Auth), d.ReviewHandler.Delete)
	api.Get("/wishlist", RequireAuth(d.Auth), d.WishlistHandler.List)
	api.Post("/wishlist/toggle", RequireAuth(d.Auth), d.WishlistHandler.Toggle)

	// Back office
	admin := api.Group("/admin")
	admin.Get("/staff", RequirePermission(d.Auth, domain.PermManageStaff), d.AdminHandler.ListStaff)
	admin.Post("/staff", RequirePermission(d.Auth, domain.PermManageStaff), d.AdminHandler.CreateStaff)
	admin.Put("/staff/:id", RequirePermission(d.Auth, domain.PermManageStaff), d.AdminHandler.UpdateStaff)
	admin.Get("/audit-logs", RequirePermission(d.Auth, domain.PermViewAuditLog), d.AdminHandler.AuditLogs)
	admin.Get("/audit-logs/export", RequirePermission(d.Auth, domain.PermViewAuditLog), d.AdminHandler.ExportAuditLogs)

	// Payment gateway bridge (gateway-facing paths, no /api prefix)
	app.Post("/create_payment_url", d.PaymentHandler.CreatePaymentURL)
	app.Get("/vnpay_ipn", d.PaymentHandler.IPN)
	app.Get("/vnpay_return", d.PaymentHandler.Return)
}
