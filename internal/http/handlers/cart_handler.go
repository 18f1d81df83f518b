package handlers

import (
	"errors"

	applog "greenbasket/internal/log"
	"greenbasket/internal/services"
	"greenbasket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart    *services.CartService
	Billing *services.BillingService
}

// Add puts one unit of :productId into the current user's cart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	u := currentUser(c)
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return render(c.Status(fiber.StatusNotFound), "notfound", fiber.Map{"Message": "Product not found"})
	}
	if err := h.Cart.Add(u.ID, productID); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return render(c.Status(fiber.StatusNotFound), "notfound", fiber.Map{"Message": "Product not found"})
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	applog.Audit(c, "cart.add", map[string]any{"product": productID})
	return c.Redirect("/cart")
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	cv, err := h.Cart.View(u.ID)
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Lines": cv.Lines, "Total": cv.Total.StringFixed(2)})
}

// Delete removes the user's own cart item; foreign or missing items 404.
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	itemID, ok := validate.ID(c.Params("itemId"))
	if !ok {
		return render(c.Status(fiber.StatusNotFound), "notfound", fiber.Map{"Message": "Cart item not found"})
	}
	if err := h.Cart.Remove(u.ID, itemID); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			applog.Security(c, "cart.delete.denied", map[string]any{"item": itemID})
			return render(c.Status(fiber.StatusNotFound), "notfound", fiber.Map{"Message": "Cart item not found"})
		}
		applog.Error(c, "cart.delete.fail", err, map[string]any{"item": itemID})
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	applog.Audit(c, "cart.delete", map[string]any{"item": itemID})
	return c.Redirect("/cart")
}

// Bill streams the cart as a freshly generated PDF. A conversion failure is a
// 400 with a plain-text body; no partial PDF is ever sent.
func (h *CartHandler) Bill(c *fiber.Ctx) error {
	u := currentUser(c)
	out, err := h.Billing.RenderBill(u)
	if err != nil {
		applog.Error(c, "bill.render.fail", err, nil)
		if errors.Is(err, services.ErrRender) {
			return c.Status(fiber.StatusBadRequest).SendString("Error generating PDF")
		}
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not generate your bill"})
	}
	applog.Audit(c, "bill.render", map[string]any{"bytes": len(out)})
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="bill.pdf"`)
	return c.Send(out)
}
