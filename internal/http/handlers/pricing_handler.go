package handlers

import (
	"strconv"
	"time"

	"festivo/internal/log"
	"festivo/internal/services"
	"festivo/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PricingHandler struct {
	Pricing *services.PricingService
	Catalog *services.CatalogService
}

// Effective answers the storefront price widget.
// GET /api/v1/price/:id
func (h *PricingHandler) Effective(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "servicio inválido"})
	}
	eff, err := h.Pricing.EffectivePrice(id, time.Now())
	if err != nil {
		log.Error(c, "pricing.effective.error", err, map[string]any{"service": id})
		return c.Status(500).JSON(fiber.Map{"error": "no disponible"})
	}
	if eff == nil {
		return c.Status(404).JSON(fiber.Map{"error": "sin precio"})
	}
	out := fiber.Map{"service_id": id, "price": eff.Price}
	if eff.Promotion != nil {
		out["promotion"] = fiber.Map{
			"id": eff.Promotion.ID, "label": eff.Promotion.Label, "percent": eff.Promotion.Percent,
		}
	}
	return c.JSON(out)
}

// Manage renders the provider's pricing panel for one service.
func (h *PricingHandler) Manage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Servicio no encontrado"})
	}
	svc, err := h.Catalog.Get(id)
	if err != nil || svc.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Servicio no encontrado"})
	}
	base, _, err := h.Pricing.BasePrice(id)
	if err != nil {
		log.Error(c, "pricing.manage.error", err, map[string]any{"service": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar el precio."})
	}
	promos, err := h.Pricing.Promotions(id)
	if err != nil {
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar las promociones."})
	}
	data := fiber.Map{"S": svc, "Base": base, "Promotions": promos}
	if eff, err := h.Pricing.EffectivePrice(id, time.Now()); err == nil && eff != nil {
		data["Effective"] = eff.Price
	}
	return render(c, "provider_pricing", data)
}

func (h *PricingHandler) SetBase(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("service_id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "service_id"})
		return c.Redirect("/proveedor")
	}
	base, err := strconv.ParseFloat(c.FormValue("base"), 64)
	if err != nil || base < 0 {
		log.Security(c, "validation.fail", map[string]any{"field": "base"})
		return c.Redirect("/proveedor/precios/" + id)
	}
	if err := h.Pricing.SetBasePrice(id, base); err != nil {
		log.Error(c, "pricing.base.error", err, map[string]any{"service": id})
	}
	log.Audit(c, "pricing.base.set", map[string]any{"service": id, "base": base})
	return c.Redirect("/proveedor/precios/" + id)
}

func (h *PricingHandler) AddPromotion(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("service_id"))
	if !ok {
		return c.Redirect("/proveedor")
	}
	label, ok := validate.Name(c.FormValue("label"))
	if !ok {
		label = "Promoción"
	}
	percent, ok := validate.Percent(c.FormValue("percent"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "percent"})
		return c.Redirect("/proveedor/precios/" + id)
	}
	start, okS := validate.Date(c.FormValue("start"))
	end, okE := validate.Date(c.FormValue("end"))
	if !okS || !okE {
		log.Security(c, "validation.fail", map[string]any{"field": "dates"})
		return c.Redirect("/proveedor/precios/" + id)
	}
	if _, err := h.Pricing.AddPromotion(id, label, percent, start, end, true); err != nil {
		log.Error(c, "pricing.promotion.add.error", err, map[string]any{"service": id})
		return c.Redirect("/proveedor/precios/" + id + "?promo=invalida")
	}
	log.Audit(c, "pricing.promotion.add", map[string]any{"service": id, "percent": percent})
	return c.Redirect("/proveedor/precios/" + id)
}

func (h *PricingHandler) TogglePromotion(c *fiber.Ctx) error {
	id, okID := validate.ID(c.FormValue("service_id"))
	promoID, okP := validate.ID(c.FormValue("promo_id"))
	if !okID || !okP {
		return c.Redirect("/proveedor")
	}
	if err := h.Pricing.TogglePromotion(id, promoID); err != nil {
		log.Error(c, "pricing.promotion.toggle.error", err, map[string]any{"service": id, "promo": promoID})
	}
	return c.Redirect("/proveedor/precios/" + id)
}

func (h *PricingHandler) DeletePromotion(c *fiber.Ctx) error {
	id, okID := validate.ID(c.FormValue("service_id"))
	promoID, okP := validate.ID(c.FormValue("promo_id"))
	if !okID || !okP {
		return c.Redirect("/proveedor")
	}
	if err := h.Pricing.DeletePromotion(id, promoID); err != nil {
		log.Error(c, "pricing.promotion.delete.error", err, map[string]any{"service": id, "promo": promoID})
	}
	log.Audit(c, "pricing.promotion.delete", map[string]any{"service": id, "promo": promoID})
	return c.Redirect("/proveedor/precios/" + id)
}
