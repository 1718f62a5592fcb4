package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"festivo/internal/http/handlers"
	"festivo/internal/repos"
	"festivo/internal/services"
)

// The provider group must reject anonymous and client sessions.
func TestProviderGate(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}

	// Bind one session per role directly through the service.
	if _, err := authSvc.Login("sid-client", "cliente@demo.com", "123456", "CLIENT"); err != nil {
		t.Fatalf("client login: %v", err)
	}
	if _, err := authSvc.Login("sid-provider", "proveedor@demo.com", "123456", "PROVIDER"); err != nil {
		t.Fatalf("provider login: %v", err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	prov := app.Group("/proveedor", handlers.RequireProvider(authSvc))
	prov.Get("/", func(c *fiber.Ctx) error { return c.SendString("panel") })

	get := func(sid string) *http.Response {
		req := httptest.NewRequest("GET", "/proveedor/", nil)
		if sid != "" {
			req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := get(""); resp.StatusCode != http.StatusFound {
		t.Fatalf("anonymous should be redirected to login, got %d", resp.StatusCode)
	}
	if resp := get("sid-client"); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("client session should get 403, got %d", resp.StatusCode)
	}
	if resp := get("sid-provider"); resp.StatusCode != http.StatusOK {
		t.Fatalf("provider session should pass, got %d", resp.StatusCode)
	}
}
