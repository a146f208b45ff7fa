package handlers

import (
	applog "modaville/internal/log"
	"modaville/internal/services"
	"modaville/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	Invoices *services.InvoiceService
}

// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invs, err := h.Invoices.List(c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"invoices": invs})
}

// GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid invoice id")
	}
	inv, items, logs, err := h.Invoices.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"invoice": inv, "items": items, "logs": logs})
}

// POST /api/invoices — manual creation by staff
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in services.ManualInvoiceInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if in.CustomerName == "" || len(in.Items) == 0 {
		return badRequest(c, "missing customerName or items")
	}
	inv, err := h.Invoices.CreateManual(currentUser(c).Email, in)
	if err != nil {
		applog.Error(c, "invoice.create.fail", err, nil)
		return fail(c, err)
	}
	applog.Info(c, "invoice.create", map[string]any{"invoice": inv.Code})
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid invoice id")
	}
	var in services.UpdateInvoiceInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	inv, err := h.Invoices.Update(currentUser(c).Email, id, in)
	if err != nil {
		applog.Error(c, "invoice.update.fail", err, map[string]any{"invoice": id})
		return fail(c, err)
	}
	return c.JSON(inv)
}

type cancelReq struct {
	Note string `json:"note"`
}

// POST /api/invoices/cancel/:id
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid invoice id")
	}
	var req cancelReq
	_ = c.BodyParser(&req)
	inv, err := h.Invoices.Cancel(currentUser(c).Email, id, req.Note)
	if err != nil {
		return fail(c, err)
	}
	applog.Info(c, "invoice.cancel", map[string]any{"invoice": inv.Code})
	return c.JSON(inv)
}
