package handlers

import (
	"os"
	"path/filepath"
	"strings"

	"greenbasket/internal/domain"
	applog "greenbasket/internal/log"
	"greenbasket/internal/services"
	"greenbasket/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler manages the catalog. Products are created here and are
// immutable from the storefront's perspective.
type AdminHandler struct {
	Catalog  *services.CatalogService
	MediaDir string
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	products, err := h.Catalog.List("")
	if err != nil {
		applog.Error(c, "admin.list.fail", err, nil)
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "admin", fiber.Map{"Products": products})
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	name, okN := validate.Name(c.FormValue("name"))
	price, okP := validate.Price(c.FormValue("price"))
	category, okC := validate.Category(c.FormValue("category"))
	if !okN || !okP || !okC {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid product fields")
	}

	p := domain.Product{
		ID:       uuid.NewString(),
		Name:     name,
		Price:    price,
		Category: category,
	}

	// Optional image upload, stored under the media dir
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			return c.Status(fiber.StatusBadRequest).SendString("image must be jpg or png")
		}
		rel := filepath.Join("product_images", p.ID+ext)
		if err := os.MkdirAll(filepath.Join(h.MediaDir, "product_images"), 0o755); err != nil {
			applog.Error(c, "admin.image.save.fail", err, nil)
			return c.Status(fiber.StatusInternalServerError).SendString("could not save image")
		}
		if err := c.SaveFile(fh, filepath.Join(h.MediaDir, rel)); err != nil {
			applog.Error(c, "admin.image.save.fail", err, nil)
			return c.Status(fiber.StatusInternalServerError).SendString("could not save image")
		}
		p.Image = rel
	}

	if err := h.Catalog.CreateProduct(p); err != nil {
		applog.Error(c, "admin.product.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not create product")
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product": p.ID, "name": p.Name})
	return c.Redirect("/admin")
}
