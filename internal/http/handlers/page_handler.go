package handlers

import "github.com/gofiber/fiber/v2"

type PageHandler struct{}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	return render(c, "home", nil)
}

func (h *PageHandler) Profile(c *fiber.Ctx) error {
	return render(c, "profile", nil)
}
