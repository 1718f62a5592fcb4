package handlers

import (
	"festivo/internal/log"
	"festivo/internal/services"
	"festivo/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AvailabilityHandler struct {
	Avail   *services.AvailabilityService
	Catalog *services.CatalogService
}

// DateInfo answers the calendar widget: is this date free, and why not.
// GET /api/v1/availability?service=<id>&date=YYYY-MM-DD
func (h *AvailabilityHandler) DateInfo(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("service"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "servicio inválido"})
	}
	date, ok := validate.Date(c.Query("date"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fecha inválida"})
	}
	day, err := h.Avail.GetDateInfo(id, date)
	if err != nil {
		log.Error(c, "availability.info.error", err, map[string]any{"service": id, "date": date})
		return c.Status(500).JSON(fiber.Map{"error": "no disponible"})
	}
	if day == nil {
		return c.JSON(fiber.Map{"service_id": id, "date": date, "status": "available", "unavailable": false})
	}
	unavailable := day.Status != "available"
	return c.JSON(fiber.Map{
		"service_id": day.ServiceID, "date": day.Date, "status": day.Status,
		"capacity": day.Capacity, "used": day.Used, "unavailable": unavailable,
	})
}

// Calendar lists every tracked day for one service.
// GET /api/v1/availability/:id
func (h *AvailabilityHandler) Calendar(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "servicio inválido"})
	}
	days, err := h.Avail.ServiceDays(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "no disponible"})
	}
	return c.JSON(fiber.Map{"service_id": id, "days": days})
}

// Manage renders the provider's availability panel for one service.
func (h *AvailabilityHandler) Manage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Servicio no encontrado"})
	}
	svc, err := h.Catalog.Get(id)
	if err != nil || svc.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Servicio no encontrado"})
	}
	days, err := h.Avail.ServiceDays(id)
	if err != nil {
		log.Error(c, "availability.manage.error", err, map[string]any{"service": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar la disponibilidad."})
	}
	return render(c, "provider_availability", fiber.Map{"S": svc, "Days": days})
}

func (h *AvailabilityHandler) ToggleBlock(c *fiber.Ctx) error {
	id, date, ok := h.formDay(c)
	if !ok {
		return c.Redirect("/proveedor")
	}
	if err := h.Avail.ToggleBlockDate(id, date); err != nil {
		log.Error(c, "availability.block.error", err, map[string]any{"service": id, "date": date})
	}
	log.Audit(c, "availability.block.toggle", map[string]any{"service": id, "date": date})
	return c.Redirect("/proveedor/disponibilidad/" + id)
}

func (h *AvailabilityHandler) SetCapacity(c *fiber.Ctx) error {
	id, date, ok := h.formDay(c)
	if !ok {
		return c.Redirect("/proveedor")
	}
	capacity := validate.Qty(c.FormValue("capacity"))
	if err := h.Avail.SetCapacity(id, date, capacity); err != nil {
		log.Error(c, "availability.capacity.error", err, map[string]any{"service": id, "date": date})
	}
	log.Audit(c, "availability.capacity.set", map[string]any{"service": id, "date": date, "capacity": capacity})
	return c.Redirect("/proveedor/disponibilidad/" + id)
}

func (h *AvailabilityHandler) AddBooking(c *fiber.Ctx) error {
	id, date, ok := h.formDay(c)
	if !ok {
		return c.Redirect("/proveedor")
	}
	if err := h.Avail.AddBooking(id, date); err != nil {
		log.Error(c, "availability.booking.error", err, map[string]any{"service": id, "date": date})
	}
	log.Audit(c, "availability.booking.add", map[string]any{"service": id, "date": date})
	return c.Redirect("/proveedor/disponibilidad/" + id)
}

func (h *AvailabilityHandler) formDay(c *fiber.Ctx) (string, string, bool) {
	id, ok := validate.ID(c.FormValue("service_id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "service_id"})
		return "", "", false
	}
	date, ok := validate.Date(c.FormValue("date"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "date"})
		return "", "", false
	}
	return id, date, true
}
