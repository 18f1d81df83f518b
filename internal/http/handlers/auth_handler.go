package handlers

import (
	"time"

	applog "greenbasket/internal/log"
	"greenbasket/internal/services"
	"greenbasket/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, okE := validate.Email(c.FormValue("email"))
	name, okN := validate.Name(c.FormValue("name"))
	pass := c.FormValue("password")

	if !okE || !okN || !validate.Password(pass) {
		applog.Security(c, "auth.signup.fail", map[string]any{"email": email, "reason": "validation"})
		return render(c.Status(fiber.StatusBadRequest), "signup", fiber.Map{
			"Err": "Enter a valid email, a name, and a password with upper/lower case, a digit and a symbol (8+ chars)",
		})
	}
	if pass != c.FormValue("password2") {
		return render(c.Status(fiber.StatusBadRequest), "signup", fiber.Map{"Err": "Passwords do not match"})
	}

	if _, err := h.Auth.Signup(sid, email, name, pass); err != nil {
		if err == services.ErrEmailTaken {
			return render(c.Status(fiber.StatusBadRequest), "signup", fiber.Map{"Err": "Email already registered"})
		}
		applog.Error(c, "auth.signup.error", err, nil)
		return render(c.Status(fiber.StatusInternalServerError), "signup", fiber.Map{"Err": "Could not create account. Please try again."})
	}

	applog.Audit(c, "auth.signup.success", map[string]any{"email": email})
	return c.Redirect("/profile")
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return render(c.Status(fiber.StatusUnauthorized), "login", fiber.Map{"Err": "Invalid email or password"})
	}

	_, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return render(c.Status(fiber.StatusUnauthorized), "login", fiber.Map{"Err": "Invalid email or password"})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/profile")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}
