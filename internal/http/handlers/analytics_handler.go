package handlers

import (
	"encoding/json"
	"html/template"

	applog "greenbasket/internal/log"
	"greenbasket/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	Cart *services.CartService
}

// Show renders the basket-composition chart: product names against summed
// quantities for the current user's cart rows.
func (h *AnalyticsHandler) Show(c *fiber.Ctx) error {
	u := currentUser(c)
	names, qtys, err := h.Cart.Analytics(u.ID)
	if err != nil {
		applog.Error(c, "analytics.fail", err, nil)
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not load analytics"})
	}

	namesJSON, _ := json.Marshal(names)
	qtysJSON, _ := json.Marshal(qtys)
	return render(c, "analytics", fiber.Map{
		"Names":      names,
		"Quantities": qtys,
		"NamesJSON":  template.JS(namesJSON),
		"QtysJSON":   template.JS(qtysJSON),
	})
}
