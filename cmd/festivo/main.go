package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"festivo/internal/config"
	"festivo/internal/http/handlers"
	applog "festivo/internal/log"
	"festivo/internal/repos"
	"festivo/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Algo salió mal. Intenta de nuevo.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Algo salió mal. Intenta de nuevo.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("uid", u.ID)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			formTok := c.FormValue("csrf")
			applog.Security(c, "csrf.fail", map[string]any{"form": formTok})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Falló la verificación de seguridad. Refresca e intenta de nuevo."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /static -> ./web/static")
	log.Printf("[static] /media  -> %s", mediaDir)

	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(mediaDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	// Public pages
	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/buscar", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.SearchHandler.Search)
	app.Get("/eventos/:type", deps.CatalogHandler.ListByType)

	app.Get("/servicio", func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este servicio ya no está disponible"})
	})
	app.Get("/servicio/:id", deps.CatalogHandler.Detail)
	app.Get("/servicio/:id/resenas", deps.ReviewHandler.ByService)
	app.Post("/resenas", deps.ReviewHandler.Add)
	app.Post("/resenas/delete", deps.ReviewHandler.Delete)

	// API
	api := app.Group("/api/v1")
	availLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/availability", availLimiter, deps.AvailabilityHandler.DateInfo)
	api.Get("/availability/:id", availLimiter, deps.AvailabilityHandler.Calendar)
	api.Get("/price/:id", deps.PricingHandler.Effective)
	api.Get("/notifications/unread", deps.NotificationHandler.UnreadCount)

	// Cart
	app.Get("/carrito", deps.CartHandler.View)
	app.Post("/carrito", deps.CartHandler.Add)
	app.Post("/carrito/cantidad", deps.CartHandler.UpdateQty)
	app.Post("/carrito/quitar", deps.CartHandler.Remove)
	app.Post("/carrito/vaciar", deps.CartHandler.Clear)
	app.Post("/carrito/cupon", deps.CartHandler.ApplyCoupon)
	app.Post("/carrito/cupon/quitar", deps.CartHandler.RemoveCoupon)
	app.Post("/carrito/envio", deps.CartHandler.SetShipping)

	// Favorites
	app.Get("/favoritos", deps.FavoritesHandler.View)
	app.Post("/favoritos", deps.FavoritesHandler.Toggle)
	app.Post("/favoritos/quitar", deps.FavoritesHandler.Remove)
	app.Post("/favoritos/vaciar", deps.FavoritesHandler.Clear)

	// Quotes
	app.Get("/cotizar", deps.QuoteHandler.Form)
	app.Post("/cotizar", deps.QuoteHandler.Submit)

	// Notifications
	app.Get("/notificaciones", deps.NotificationHandler.View)
	app.Post("/notificaciones/leer", deps.NotificationHandler.MarkRead)
	app.Post("/notificaciones/leer-todas", deps.NotificationHandler.MarkAllRead)

	// Auth routes (login throttled)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Demasiados intentos. Intenta más tarde."})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	// Client dashboard
	app.Get("/dashboard", handlers.RequireUser(authSvc), deps.DashboardHandler.Client)

	// Provider dashboard
	prov := app.Group("/proveedor", handlers.RequireProvider(authSvc))
	prov.Get("/", deps.DashboardHandler.Provider)
	prov.Get("/disponibilidad/:id", deps.AvailabilityHandler.Manage)
	prov.Post("/disponibilidad/bloquear", deps.AvailabilityHandler.ToggleBlock)
	prov.Post("/disponibilidad/capacidad", deps.AvailabilityHandler.SetCapacity)
	prov.Post("/disponibilidad/reservar", deps.AvailabilityHandler.AddBooking)
	prov.Get("/precios/:id", deps.PricingHandler.Manage)
	prov.Post("/precios/base", deps.PricingHandler.SetBase)
	prov.Post("/precios/promocion", deps.PricingHandler.AddPromotion)
	prov.Post("/precios/promocion/toggle", deps.PricingHandler.TogglePromotion)
	prov.Post("/precios/promocion/eliminar", deps.PricingHandler.DeletePromotion)
	prov.Post("/servicios", deps.CatalogHandler.Create)
	prov.Get("/resenas", deps.ReviewHandler.Moderate)
	prov.Post("/resenas/responder", deps.ReviewHandler.Respond)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Página no encontrada"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
