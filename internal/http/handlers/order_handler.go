package handlers

import (
	"modaville/internal/domain"
	applog "modaville/internal/log"
	"modaville/internal/services"
	"modaville/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order *services.OrderService
}

// POST /api/addOrder
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in services.CreateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if _, ok := validate.Name(in.RecipientName); !ok {
		return badRequest(c, "invalid recipient name")
	}
	if _, ok := validate.Phone(in.Phone); !ok {
		return badRequest(c, "invalid phone")
	}
	if in.Address == "" {
		return badRequest(c, "missing address")
	}

	o, err := h.Order.Create(currentUser(c).ID, in)
	if err != nil {
		applog.Error(c, "order.create.fail", err, nil)
		return fail(c, err)
	}
	applog.Info(c, "order.create", map[string]any{"order": o.Code, "total": o.Total})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/allOrders
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	orders, err := h.Order.ListAll(c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// GET /api/myOrders
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	orders, err := h.Order.ListByCustomer(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

type statusReq struct {
	Status int `json:"status"`
}

// PUT /api/updateOrder/:code
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	code, ok := validate.Code(c.Params("code"))
	if !ok {
		return badRequest(c, "invalid order code")
	}
	var req statusReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	o, err := h.Order.Transition(currentUser(c), code, req.Status)
	if err != nil {
		applog.Error(c, "order.status.fail", err, map[string]any{"order": code, "target": req.Status})
		return fail(c, err)
	}
	applog.Info(c, "order.status", map[string]any{"order": code, "status": o.Status})
	return c.JSON(o)
}

// PUT /api/approveOrder/:code
func (h *OrderHandler) Approve(c *fiber.Ctx) error {
	code, ok := validate.Code(c.Params("code"))
	if !ok {
		return badRequest(c, "invalid order code")
	}
	o, err := h.Order.Transition(currentUser(c), code, domain.OrderApproved)
	if err != nil {
		return fail(c, err)
	}
	applog.Info(c, "order.approve", map[string]any{"order": code})
	return c.JSON(o)
}

type trackReq struct {
	Code  string `json:"code"`
	Phone string `json:"phone"`
}

// POST /api/order/track — unauthenticated guest lookup
func (h *OrderHandler) Track(c *fiber.Ctx) error {
	var req trackReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	code, ok := validate.Code(req.Code)
	if !ok {
		return badRequest(c, "invalid order code")
	}
	phone, ok := validate.Phone(req.Phone)
	if !ok {
		return badRequest(c, "invalid phone")
	}
	o, items, err := h.Order.Track(code, phone)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}

// PUT /api/order/cancel/:code
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	code, ok := validate.Code(c.Params("code"))
	if !ok {
		return badRequest(c, "invalid order code")
	}
	o, err := h.Order.CancelByCustomer(currentUser(c).ID, code)
	if err != nil {
		applog.Security(c, "order.cancel.fail", map[string]any{"order": code, "error": err.Error()})
		return fail(c, err)
	}
	applog.Info(c, "order.cancel", map[string]any{"order": code})
	return c.JSON(o)
}
