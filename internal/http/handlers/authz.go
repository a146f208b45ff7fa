package handlers

import (
	"strings"

	"modaville/internal/domain"
	applog "modaville/internal/log"
	"modaville/internal/services"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	return ""
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func authenticate(c *fiber.Ctx, auth *services.AuthService) (*domain.User, error) {
	tok := bearerToken(c)
	if tok == "" {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}
	u, err := auth.UserFromToken(tok)
	if err != nil {
		applog.Security(c, "auth.token.reject", map[string]any{"reason": err.Error()})
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	c.Locals("user", u)
	return u, nil
}

// RequireAuth resolves the bearer token to a live, active account.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := authenticate(c, auth); err != nil || currentUser(c) == nil {
			return err
		}
		return c.Next()
	}
}

// RequirePermission authenticates, then applies the single authorization
// predicate: admins pass every check, everyone else needs the permission
// string in their granted set.
func RequirePermission(auth *services.AuthService, perm string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := authenticate(c, auth)
		if u == nil {
			return err
		}
		if !u.Can(perm) {
			applog.Security(c, "access.denied", map[string]any{"user": u.ID, "perm": perm})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied"})
		}
		return c.Next()
	}
}
