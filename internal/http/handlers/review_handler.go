package handlers

import (
	"festivo/internal/domain"
	"festivo/internal/log"
	"festivo/internal/repos"
	"festivo/internal/services"
	"festivo/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
	Catalog *services.CatalogService
}

func (h *ReviewHandler) ByService(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Servicio no encontrado"})
	}
	svc, err := h.Catalog.Get(id)
	if err != nil || svc.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Servicio no encontrado"})
	}
	list, err := h.Reviews.ByService(id)
	if err != nil {
		log.Error(c, "reviews.list.error", err, map[string]any{"service": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar las reseñas."})
	}
	stats, _ := h.Reviews.Stats(id)
	return render(c, "reviews", fiber.Map{"S": svc, "Reviews": list, "Stats": stats})
}

func (h *ReviewHandler) Add(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.FormValue("service_id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "service_id"})
		return c.Redirect("/")
	}
	rating, ok := validate.Rating(c.FormValue("rating"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "rating"})
		return c.Redirect("/servicio/" + id + "/resenas")
	}
	comment := c.FormValue("comment")
	if len(comment) > 500 {
		comment = comment[:500]
	}

	// One review per user per service: edit replaces instead of duplicating.
	if existing, err := h.Reviews.UserReview(id, u.ID); err == nil && existing != nil {
		if err := h.Reviews.Update(existing.ID, rating, comment); err != nil {
			log.Error(c, "reviews.update.error", err, map[string]any{"service": id})
		}
		log.Audit(c, "reviews.update", map[string]any{"service": id, "rating": rating})
		return c.Redirect("/servicio/" + id + "/resenas")
	}

	if _, err := h.Reviews.Add(id, u.ID, u.Name, rating, comment); err != nil {
		log.Error(c, "reviews.add.error", err, map[string]any{"service": id})
	}
	log.Audit(c, "reviews.add", map[string]any{"service": id, "rating": rating})
	return c.Redirect("/servicio/" + id + "/resenas")
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, okID := validate.ID(c.FormValue("service_id"))
	reviewID, okR := validate.ID(c.FormValue("review_id"))
	if !okID || !okR {
		return c.Redirect("/")
	}
	rev, err := h.Reviews.UserReview(id, u.ID)
	if err != nil || rev == nil || rev.ID != reviewID {
		log.Security(c, "reviews.delete.denied", map[string]any{"review": reviewID})
		return c.Redirect("/servicio/" + id + "/resenas")
	}
	if err := h.Reviews.Delete(reviewID); err != nil {
		log.Error(c, "reviews.delete.error", err, map[string]any{"review": reviewID})
	}
	log.Audit(c, "reviews.delete", map[string]any{"review": reviewID})
	return c.Redirect("/servicio/" + id + "/resenas")
}

// Moderate lists reviews for the provider with optional status/rating filters.
func (h *ReviewHandler) Moderate(c *fiber.Ctx) error {
	f := repos.ReviewFilter{}
	if s := c.Query("estado"); s == "pending" || s == "responded" {
		f.Status = s
	}
	if r, ok := validate.Rating(c.Query("min")); ok {
		f.MinRating = r
	}
	if r, ok := validate.Rating(c.Query("max")); ok {
		f.MaxRating = r
	}
	if id, ok := validate.ID(c.Query("service")); ok {
		f.ServiceID = id
	}
	list, err := h.Reviews.Filter(f)
	if err != nil {
		log.Error(c, "reviews.moderate.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar las reseñas."})
	}
	return render(c, "provider_reviews", fiber.Map{"Reviews": list, "Filter": f})
}

func (h *ReviewHandler) Respond(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	reviewID, ok := validate.ID(c.FormValue("review_id"))
	if !ok {
		return c.Redirect("/proveedor/resenas")
	}
	text := c.FormValue("response")
	if text == "" || len(text) > 500 {
		log.Security(c, "validation.fail", map[string]any{"field": "response"})
		return c.Redirect("/proveedor/resenas")
	}
	if err := h.Reviews.Respond(reviewID, u.ID, text); err != nil {
		log.Error(c, "reviews.respond.error", err, map[string]any{"review": reviewID})
	}
	log.Audit(c, "reviews.respond", map[string]any{"review": reviewID})
	return c.Redirect("/proveedor/resenas")
}
