package handlers

import (
	"strings"

	applog "greenbasket/internal/log"
	"greenbasket/internal/services"
	"greenbasket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// Dashboard lists the catalog, optionally filtered by ?q=<substring>.
func (h *CatalogHandler) Dashboard(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	q := ""
	if strings.TrimSpace(rawQ) != "" {
		var ok bool
		q, ok = validate.Q(rawQ)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			return render(c.Status(fiber.StatusBadRequest), "dashboard", fiber.Map{
				"Q": "", "Products": []any{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
			})
		}
	}

	products, err := h.Catalog.List(q)
	if err != nil {
		applog.Error(c, "dashboard.list", err, nil)
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	}

	return render(c, "dashboard", fiber.Map{"Q": q, "Products": products, "Count": len(products)})
}
