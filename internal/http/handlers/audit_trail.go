package handlers

import (
	"strings"

	"modaville/internal/domain"
	"modaville/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuditTrail records mutating API requests after the handler has decided
// the response. The write is queued fire-and-forget: a failed audit
// insert never fails the request it describes. Credential fields are
// stripped from the recorded body.
func AuditTrail(audit *services.AuditService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := c.Method()
		if method == fiber.MethodGet || method == fiber.MethodHead || method == fiber.MethodOptions {
			return c.Next()
		}

		// Body must be copied before Next; fasthttp reuses the buffer.
		detail := services.StripSensitive(c.Body())

		err := c.Next()

		entry := domain.AuditLog{
			Action:     auditAction(method, c.Path()),
			Method:     method,
			Path:       c.Path(),
			StatusCode: c.Response().StatusCode(),
			DetailJSON: detail,
		}
		entry.ResourceType, entry.ResourceID = resourceOf(c)
		if u := currentUser(c); u != nil {
			entry.ActorID = u.ID
			entry.ActorEmail = u.Email
		}
		audit.Record(entry)
		return err
	}
}

func auditAction(method, path string) string {
	p := strings.Trim(path, "/")
	p = strings.ReplaceAll(p, "/", ".")
	return strings.ToLower(method) + "." + p
}

func resourceOf(c *fiber.Ctx) (string, string) {
	p := c.Path()
	switch {
	case strings.Contains(p, "sp"):
		return "product", c.Params("id")
	case strings.Contains(p, "Order") || strings.Contains(p, "/order"):
		return "order", c.Params("code")
	case strings.Contains(p, "invoices"):
		return "invoice", c.Params("id")
	case strings.Contains(p, "staff"):
		return "staff", c.Params("id")
	case strings.Contains(p, "cart"):
		return "cart", ""
	case strings.Contains(p, "reviews"):
		return "review", c.Params("productId")
	case strings.Contains(p, "wishlist"):
		return "wishlist", ""
	case strings.Contains(p, "auth"):
		return "account", ""
	}
	return "", ""
}
