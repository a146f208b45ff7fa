package handlers

import (
	"path/filepath"
	"strconv"
	"strings"

	"modaville/internal/config"
	"modaville/internal/domain"
	applog "modaville/internal/log"
	"modaville/internal/services"
	"modaville/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Cfg     config.Config
}

// GET /api/getallsp
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))
	products, err := h.Catalog.ListProducts(
		strings.ToLower(strings.TrimSpace(c.Query("q"))),
		c.Query("category"),
		strings.ToUpper(c.Query("gender")),
		page, pageSize,
	)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// GET /api/getsp/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ID == "" || !p.Active {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}

// GET /api/categories
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"categories": cats})
}

func (h *ProductHandler) parseForm(c *fiber.Ctx, p *domain.Product) error {
	p.CategoryID = c.FormValue("categoryId", p.CategoryID)
	p.Name = c.FormValue("name", p.Name)
	p.Description = c.FormValue("description", p.Description)
	if v := c.FormValue("price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid price")
		}
		p.Price = f
	}
	if v := c.FormValue("discount"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid discount")
		}
		p.Discount = f
	}
	if v := c.FormValue("stock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid stock")
		}
		p.Stock = n
	}
	if v := c.FormValue("gender"); v != "" {
		g := strings.ToUpper(v)
		if g != "MALE" && g != "FEMALE" && g != "UNISEX" {
			return fiber.NewError(fiber.StatusBadRequest, "invalid gender")
		}
		p.Gender = g
	}
	if v := c.FormValue("sizes"); v != "" {
		p.SizesJSON = v
	}
	if v := c.FormValue("colors"); v != "" {
		p.ColorsJSON = v
	}

	// Optional image upload (multipart)
	if file, err := c.FormFile("image"); err == nil && file != nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			return fiber.NewError(fiber.StatusBadRequest, "unsupported image type")
		}
		rel := filepath.Join("products", uuid.NewString()+ext)
		if err := c.SaveFile(file, filepath.Join(h.Cfg.MediaDir, rel)); err != nil {
			return err
		}
		p.ImagePath = filepath.ToSlash(rel)
	}
	return nil
}

// POST /api/createsp (multipart form, optional image)
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var p domain.Product
	p.Gender = "UNISEX"
	if err := h.parseForm(c, &p); err != nil {
		return fail(c, err)
	}
	if p.Name == "" || p.CategoryID == "" {
		return badRequest(c, "missing name or categoryId")
	}
	if err := h.Catalog.CreateProduct(&p); err != nil {
		applog.Error(c, "product.create.fail", err, nil)
		return fail(c, err)
	}
	applog.Info(c, "product.create", map[string]any{"product": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/updatesp/:id (multipart form, optional image)
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ID == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err := h.parseForm(c, &p); err != nil {
		return fail(c, err)
	}
	if err := h.Catalog.UpdateProduct(&p); err != nil {
		applog.Error(c, "product.update.fail", err, map[string]any{"product": id})
		return fail(c, err)
	}
	return c.JSON(p)
}

// DELETE /api/deletesp/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return fail(c, err)
	}
	applog.Info(c, "product.delete", map[string]any{"product": id})
	return c.JSON(fiber.Map{"ok": true})
}
