package handlers

import (
	"festivo/internal/log"
	"festivo/internal/services"
	"festivo/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Notif *services.NotificationService
}

func (h *NotificationHandler) View(c *fiber.Ctx) error {
	list, err := h.Notif.List(50)
	if err != nil {
		log.Error(c, "notifications.view.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar las notificaciones."})
	}
	unread, _ := h.Notif.UnreadCount()
	return render(c, "notifications", fiber.Map{"Notifications": list, "Unread": unread})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Redirect("/notificaciones")
	}
	if err := h.Notif.MarkRead(id); err != nil {
		log.Error(c, "notifications.read.error", err, map[string]any{"id": id})
	}
	return c.Redirect("/notificaciones")
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.Notif.MarkAllRead(); err != nil {
		log.Error(c, "notifications.readall.error", err, nil)
	}
	return c.Redirect("/notificaciones")
}

// UnreadCount feeds the header badge.
// GET /api/v1/notifications/unread
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.Notif.UnreadCount()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "no disponible"})
	}
	return c.JSON(fiber.Map{"unread": n})
}
