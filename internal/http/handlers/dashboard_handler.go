package handlers

import (
	"festivo/internal/log"
	"festivo/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Fav    *services.FavoritesService
	Notif  *services.NotificationService
	Quotes *services.QuoteService
	Avail  *services.AvailabilityService
}

// Client renders the logged-in client's landing page: favorites plus the
// latest price movements.
func (h *DashboardHandler) Client(c *fiber.Ctx) error {
	sid := ensureSID(c)
	favs, err := h.Fav.List(sid)
	if err != nil {
		log.Error(c, "dashboard.client.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar el panel."})
	}
	recent, _ := h.Notif.RecentPriceNotifications(5)
	unread, _ := h.Notif.UnreadCount()
	return render(c, "dashboard_client", fiber.Map{
		"Favorites": favs, "Recent": recent, "Unread": unread,
	})
}

// Provider renders the provider's landing page: pending quote requests and
// the services that have availability records to manage.
func (h *DashboardHandler) Provider(c *fiber.Ctx) error {
	quotes, err := h.Quotes.ListLatest(10)
	if err != nil {
		log.Error(c, "dashboard.provider.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar el panel."})
	}
	tracked, _ := h.Avail.ListServicesWithAvailability()
	unread, _ := h.Notif.UnreadCount()
	return render(c, "dashboard_provider", fiber.Map{
		"Quotes": quotes, "TrackedServices": tracked, "Unread": unread,
	})
}
