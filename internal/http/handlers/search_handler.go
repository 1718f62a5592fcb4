package handlers

import (
	"strings"

	"festivo/internal/log"
	"festivo/internal/services"
	"festivo/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return render(c, "search", fiber.Map{"Q": "", "Services": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Services": []any{}, "Count": 0, "Err": "Ingresa una palabra clave válida",
		})
	}
	q = strings.ToLower(q)

	eventType := strings.TrimSpace(c.Query("tipo"))
	if eventType != "" {
		if _, ok := validate.EventType(eventType); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "tipo"})
			return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
				"Q": q, "Services": []any{}, "Count": 0, "Err": "Filtro inválido",
			})
		}
	}
	category := strings.TrimSpace(c.Query("categoria"))
	if category != "" {
		if _, ok := validate.Q(category); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "categoria"})
			return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
				"Q": q, "Services": []any{}, "Count": 0, "Err": "Filtro inválido",
			})
		}
	}

	items, err := h.Catalog.Search(q, eventType, category, 1, 20)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar los resultados."})
	}

	return render(c, "search", fiber.Map{
		"Q": q, "EventType": eventType, "Category": category,
		"Services": items, "Count": len(items),
	})
}
