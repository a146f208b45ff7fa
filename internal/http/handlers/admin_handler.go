package handlers

import (
	"time"

	applog "modaville/internal/log"
	"modaville/internal/repos"
	"modaville/internal/services"
	"modaville/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Staff *services.StaffService
	Audit *services.AuditService
}

// GET /api/admin/staff
func (h *AdminHandler) ListStaff(c *fiber.Ctx) error {
	staff, err := h.Staff.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"staff": staff})
}

// POST /api/admin/staff
func (h *AdminHandler) CreateStaff(c *fiber.Ctx) error {
	var in services.StaffInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if _, ok := validate.Email(in.Email); !ok {
		return badRequest(c, "invalid email")
	}
	if !validate.Password(in.Password) {
		return badRequest(c, "password must be 8-64 chars with upper, lower and digit")
	}
	u, err := h.Staff.Create(currentUser(c), in)
	if err != nil {
		applog.Error(c, "staff.create.fail", err, map[string]any{"email": in.Email})
		return fail(c, err)
	}
	applog.Info(c, "staff.create", map[string]any{"staff": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// PUT /api/admin/staff/:id
func (h *AdminHandler) UpdateStaff(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid staff id")
	}
	var in services.StaffUpdate
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	u, err := h.Staff.Update(id, in)
	if err != nil {
		applog.Error(c, "staff.update.fail", err, map[string]any{"staff": id})
		return fail(c, err)
	}
	return c.JSON(u)
}

func auditFilter(c *fiber.Ctx) repos.AuditFilter {
	return repos.AuditFilter{
		ActorID:      c.Query("actor"),
		Action:       c.Query("action"),
		ResourceType: c.Query("resource"),
		Limit:        c.QueryInt("limit", 200),
	}
}

// GET /api/admin/audit-logs
func (h *AdminHandler) AuditLogs(c *fiber.Ctx) error {
	entries, err := h.Audit.List(auditFilter(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"logs": entries})
}

// GET /api/admin/audit-logs/export — streams a generated spreadsheet
func (h *AdminHandler) ExportAuditLogs(c *fiber.Ctx) error {
	data, err := h.Audit.ExportXLSX(auditFilter(c))
	if err != nil {
		applog.Error(c, "audit.export.fail", err, nil)
		return fail(c, err)
	}
	name := "audit-logs-" + time.Now().Format("20060102") + ".xlsx"
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(data)
}
