package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"greenbasket/internal/repos"
)

// Seeded passwords must be hashed, never plaintext.
func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatal("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestSignupCreatesSessionAndRedirectsToProfile(t *testing.T) {
	app, _ := newStoreApp(t, &fakeConverter{out: []byte("%PDF")})
	tok := csrfToken(t, app)

	req := formPost("/signup", tok, "name=Carol&email=carol@greenbasket.test&password=Str0ng!pass&password2=Str0ng!pass", "")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on signup, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/profile" {
		t.Fatalf("expected redirect to /profile, got %s", loc)
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("no session cookie issued")
	}

	// Session is live: profile renders the new user's name
	pr := httptest.NewRequest("GET", "/profile", nil)
	pr.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	presp, err := app.Test(pr)
	if err != nil {
		t.Fatal(err)
	}
	if presp.StatusCode != http.StatusOK {
		t.Fatalf("profile after signup: %d", presp.StatusCode)
	}
	body, _ := io.ReadAll(presp.Body)
	if !strings.Contains(string(body), "Carol") {
		t.Fatal("profile should greet the signed-up user")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	app, _ := newStoreApp(t, &fakeConverter{out: []byte("%PDF")})
	tok := csrfToken(t, app)

	// alice is seeded
	req := formPost("/signup", tok, "name=Alice&email=alice@greenbasket.test&password=Str0ng!pass&password2=Str0ng!pass", "")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "already registered") {
		t.Fatalf("missing duplicate-email message: %s", body)
	}
}

func TestSignupWeakPassword(t *testing.T) {
	app, _ := newStoreApp(t, &fakeConverter{out: []byte("%PDF")})
	tok := csrfToken(t, app)

	req := formPost("/signup", tok, "name=Dave&email=dave@greenbasket.test&password=weak&password2=weak", "")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d", resp.StatusCode)
	}
}

func TestLoginSuccessAndFailure(t *testing.T) {
	app, _ := newStoreApp(t, &fakeConverter{out: []byte("%PDF")})
	tok := csrfToken(t, app)

	// bad password -> 401
	resp, err := app.Test(formPost("/login", tok, "email=alice@greenbasket.test&password=wrongpass!", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", resp.StatusCode)
	}

	// good password -> redirect to profile
	resp, err = app.Test(formPost("/login", tok, "email=alice@greenbasket.test&password=Passw0rd!", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on success, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/profile" {
		t.Fatalf("expected redirect to /profile, got %s", loc)
	}
}

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	app, _ := newStoreApp(t, &fakeConverter{out: []byte("%PDF")})
	for _, path := range []string{"/profile", "/dashboard", "/cart", "/cart/bill", "/analytics"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %d -> %s", path, resp.StatusCode, resp.Header.Get("Location"))
		}
	}
}

func TestAdminAreaDeniedToUsers(t *testing.T) {
	app, users := newStoreApp(t, &fakeConverter{out: []byte("%PDF")})
	loginAs(t, users, "sid-alice", "u-alice")

	req := httptest.NewRequest("GET", "/admin/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-alice"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}
}
