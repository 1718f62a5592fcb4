package handlers

import (
	"festivo/internal/log"
	"festivo/internal/services"
	"festivo/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type FavoritesHandler struct {
	Fav *services.FavoritesService
}

func (h *FavoritesHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	items, err := h.Fav.List(sid)
	if err != nil {
		log.Error(c, "favorites.view.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar los favoritos."})
	}
	return render(c, "favorites", fiber.Map{"Services": items, "Count": len(items)})
}

func (h *FavoritesHandler) Toggle(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("service_id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "service_id"})
		return c.Redirect("/favoritos")
	}
	if err := h.Fav.Toggle(sid, id); err != nil {
		log.Error(c, "favorites.toggle.error", err, map[string]any{"service": id})
	}
	back := c.FormValue("back")
	if back == "" || back[0] != '/' {
		back = "/favoritos"
	}
	return c.Redirect(back)
}

func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("service_id"))
	if !ok {
		return c.Redirect("/favoritos")
	}
	if err := h.Fav.Unsave(sid, id); err != nil {
		log.Error(c, "favorites.remove.error", err, map[string]any{"service": id})
	}
	return c.Redirect("/favoritos")
}

func (h *FavoritesHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Fav.Clear(sid); err != nil {
		log.Error(c, "favorites.clear.error", err, nil)
	}
	return c.Redirect("/favoritos")
}
