package handlers

import (
	applog "festivo/internal/log"
	"festivo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireProvider gates the provider dashboard routes.
func RequireProvider(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.Role != "PROVIDER" {
			applog.Security(c, "access.denied.provider", map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Acceso denegado"})
		}
		c.Locals("user", u)
		c.Locals("uid", u.ID)
		return c.Next()
	}
}

// RequireUser enforces that someone is logged in; otherwise redirect to login.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		c.Locals("uid", u.ID)
		return c.Next()
	}
}
