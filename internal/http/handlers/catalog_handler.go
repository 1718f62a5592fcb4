package handlers

import (
	"strings"
	"time"

	"festivo/internal/domain"
	"festivo/internal/log"
	"festivo/internal/services"
	"festivo/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Pricing *services.PricingService
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	types, err := h.Catalog.ListEventTypes()
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	return render(c, "home", fiber.Map{"EventTypes": types})
}

func (h *CatalogHandler) ListByType(c *fiber.Ctx) error {
	eventType, ok := validate.EventType(c.Params("type"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Categoría de eventos no encontrada"})
	}
	items, err := h.Catalog.ListByEventType(eventType, 1, 24)
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	return render(c, "event_type", fiber.Map{"EventType": eventType, "Services": items})
}

// Create registers a provider-submitted service and seeds its base price.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	eventType, okT := validate.EventType(c.FormValue("event_type"))
	title, okN := validate.Name(c.FormValue("title"))
	category, okC := validate.Q(c.FormValue("category"))
	price := strings.TrimSpace(c.FormValue("price"))
	if !okT || !okN || !okC || price == "" {
		log.Security(c, "validation.fail", map[string]any{"form": "service"})
		return c.Redirect("/proveedor")
	}
	desc := c.FormValue("description")
	if len(desc) > 500 {
		desc = desc[:500]
	}

	svc, err := h.Catalog.Add(domain.Service{
		EventType:   eventType,
		Category:    category,
		Title:       title,
		Description: desc,
		Price:       price,
	})
	if err != nil {
		log.Error(c, "catalog.create.error", err, nil)
		return c.Redirect("/proveedor")
	}
	if err := h.Pricing.SetBasePrice(svc.ID, services.ParsePrice(price)); err != nil {
		log.Error(c, "catalog.create.pricing.error", err, map[string]any{"service": svc.ID})
	}
	log.Audit(c, "catalog.create", map[string]any{"service": svc.ID, "event_type": eventType})
	return c.Redirect("/proveedor")
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "service"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este servicio ya no está disponible"})
	}
	svc, err := h.Catalog.Get(id)
	if err != nil || svc.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este servicio ya no está disponible"})
	}

	data := fiber.Map{"S": svc}
	if eff, err := h.Pricing.EffectivePrice(id, time.Now()); err == nil && eff != nil {
		data["EffectivePrice"] = eff.Price
		if eff.Promotion != nil {
			data["Promotion"] = eff.Promotion
		}
	}
	return render(c, "service", data)
}
