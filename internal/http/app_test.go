package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"greenbasket/internal/config"
	"greenbasket/internal/http/handlers"
	"greenbasket/internal/pdf"
	"greenbasket/internal/repos"
	"greenbasket/internal/services"
)

type fakeConverter struct {
	out []byte
	err error
}

func (f *fakeConverter) Convert(html []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

// newStoreApp wires a full app against an in-memory DB (seeded by OpenDB)
// with the given PDF converter, mirroring the route table in main.
func newStoreApp(t *testing.T, conv pdf.Converter) (*fiber.App, *repos.UserRepo) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", MediaDir: t.TempDir()}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := handlers.NewViews("../../web/templates")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, cfg, engine, conv)
	requireUser := handlers.RequireUser(authSvc)

	app.Get("/", deps.PageHandler.Home)
	app.Get("/signup", authH.SignupForm)
	app.Post("/signup", authH.Signup)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 5, Expiration: time.Minute}), authH.Login)
	app.Post("/logout", authH.Logout)
	app.Get("/profile", requireUser, deps.PageHandler.Profile)
	app.Get("/dashboard", requireUser, deps.CatalogHandler.Dashboard)
	app.Post("/cart/add/:productId", requireUser, deps.CartHandler.Add)
	app.Get("/cart", requireUser, deps.CartHandler.View)
	app.Post("/cart/delete/:itemId", requireUser, deps.CartHandler.Delete)
	app.Get("/cart/bill", requireUser, deps.CartHandler.Bill)
	app.Get("/analytics", requireUser, deps.AnalyticsHandler.Show)
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Post("/products", deps.AdminHandler.CreateProduct)

	return app, userRepo
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// csrfToken fetches a csrf cookie by loading the login form.
func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

// loginAs binds sid directly to a seeded user so tests can act as them.
func loginAs(t *testing.T, users *repos.UserRepo, sid, userID string) {
	t.Helper()
	if err := users.BindSession(sid, userID); err != nil {
		t.Fatalf("bind session: %v", err)
	}
}

func formPost(path, tok, body string, sid string) *http.Request {
	form := "csrf=" + tok
	if body != "" {
		form += "&" + body
	}
	req := httptest.NewRequest("POST", path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}
