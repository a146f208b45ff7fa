package handlers

import (
	"modaville/internal/services"
	"modaville/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

// GET /api/wishlist
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.Wish.List(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

type toggleReq struct {
	ProductID string `json:"productId"`
}

// POST /api/wishlist/toggle — presence flips; response reports the result
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	var req toggleReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return badRequest(c, "missing productId")
	}
	liked, err := h.Wish.Toggle(currentUser(c).ID, req.ProductID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}
