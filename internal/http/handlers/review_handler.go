package handlers

import (
	"modaville/internal/services"
	"modaville/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

// GET /api/reviews/:productId
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	revs, err := h.Reviews.ListByProduct(pid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"reviews": revs})
}

type reviewReq struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// POST /api/reviews
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	var req reviewReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return badRequest(c, "missing productId")
	}
	if !validate.Rating(req.Rating) {
		return badRequest(c, "rating must be between 1 and 5")
	}
	if err := h.Reviews.Submit(currentUser(c).ID, req.ProductID, req.Rating, req.Comment); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

type moderateReq struct {
	ProductID  string `json:"productId"`
	CustomerID string `json:"customerId"`
	Status     string `json:"status"`
}

// PUT /api/reviews/moderate
func (h *ReviewHandler) Moderate(c *fiber.Ctx) error {
	var req moderateReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.Reviews.Moderate(req.ProductID, req.CustomerID, req.Status); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// DELETE /api/reviews/:productId — customer removes own review
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Reviews.Delete(pid, currentUser(c).ID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
