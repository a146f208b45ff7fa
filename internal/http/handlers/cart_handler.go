package handlers

import (
	"strconv"

	"modaville/internal/services"
	"modaville/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartLineReq struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Qty       int    `json:"qty"`
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cv)
}

// POST /api/cart — merges into an existing (product,color,size) line
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req cartLineReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return badRequest(c, "missing productId")
	}
	qty := validate.Qty(strconv.Itoa(req.Qty))
	if err := h.Cart.Add(currentUser(c).ID, req.ProductID, req.Color, req.Size, qty); err != nil {
		return fail(c, err)
	}
	cv, err := h.Cart.View(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cv)
}

// PUT /api/cart — set a line's qty (qty<1 removes)
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var req cartLineReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return badRequest(c, "missing productId")
	}
	if err := h.Cart.SetQty(currentUser(c).ID, req.ProductID, req.Color, req.Size, req.Qty); err != nil {
		return fail(c, err)
	}
	cv, err := h.Cart.View(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cv)
}

// DELETE /api/cart — remove one line
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var req cartLineReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.Cart.Remove(currentUser(c).ID, req.ProductID, req.Color, req.Size); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

type cartSyncReq struct {
	Items []services.SyncLine `json:"items"`
}

// POST /api/cart/sync — merge a client-held cart into server state
func (h *CartHandler) Sync(c *fiber.Ctx) error {
	var req cartSyncReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	cv, err := h.Cart.Sync(currentUser(c).ID, req.Items)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cv)
}
