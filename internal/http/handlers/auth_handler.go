package handlers

import (
	applog "modaville/internal/log"
	"modaville/internal/services"
	"modaville/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "invalid name")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "invalid email")
	}
	phone, ok := validate.Phone(req.Phone)
	if !ok {
		return badRequest(c, "invalid phone")
	}
	if !validate.Password(req.Password) {
		return badRequest(c, "password must be 8-64 chars with upper, lower and digit")
	}

	u, tok, err := h.Auth.Register(name, email, phone, req.Password)
	if err != nil {
		applog.Error(c, "auth.register.fail", err, map[string]any{"email": email})
		return fail(c, err)
	}
	applog.Info(c, "auth.register", map[string]any{"user": u.ID})
	return c.JSON(fiber.Map{"token": tok, "user": u})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	u, tok, err := h.Auth.Login(email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, err)
	}
	applog.Info(c, "auth.login", map[string]any{"user": u.ID})
	return c.JSON(fiber.Map{"token": tok, "user": u})
}
