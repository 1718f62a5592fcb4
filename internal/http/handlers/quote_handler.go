package handlers

import (
	"strconv"
	"strings"

	"festivo/internal/log"
	"festivo/internal/services"
	"festivo/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type QuoteHandler struct {
	Quotes *services.QuoteService
}

func (h *QuoteHandler) Form(c *fiber.Ctx) error {
	return render(c, "quote", fiber.Map{"Sent": c.Query("enviado") == "1"})
}

func (h *QuoteHandler) Submit(c *fiber.Ctx) error {
	name, okN := validate.Name(c.FormValue("name"))
	email, okE := validate.Email(c.FormValue("email"))
	eventType, okT := validate.EventType(c.FormValue("event_type"))
	if !okN || !okE || !okT {
		log.Security(c, "validation.fail", map[string]any{"form": "quote"})
		return c.Status(fiber.StatusBadRequest).Render("quote", fiber.Map{
			"Err": "Revisa los campos obligatorios (nombre, correo y tipo de evento).",
		})
	}

	eventDate := ""
	if d, ok := validate.Date(c.FormValue("event_date")); ok {
		eventDate = d
	}
	guests, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("guest_count")))
	if guests < 0 {
		guests = 0
	}

	var svcIDs []string
	for _, raw := range strings.Split(c.FormValue("services"), ",") {
		if id, ok := validate.ID(raw); ok {
			svcIDs = append(svcIDs, id)
		}
	}
	msg := c.FormValue("message")
	if len(msg) > 1000 {
		msg = msg[:1000]
	}

	id, err := h.Quotes.Submit(services.QuoteInput{
		Name:       name,
		Email:      email,
		Phone:      strings.TrimSpace(c.FormValue("phone")),
		EventType:  eventType,
		EventDate:  eventDate,
		GuestCount: guests,
		Budget:     strings.TrimSpace(c.FormValue("budget")),
		Services:   svcIDs,
		Message:    msg,
	})
	if err != nil {
		log.Error(c, "quote.submit.error", err, nil)
		return c.Status(500).Render("quote", fiber.Map{"Err": "No se pudo enviar la solicitud. Intenta de nuevo."})
	}

	log.Audit(c, "quote.submit", map[string]any{"quote": id, "event_type": eventType})
	return c.Redirect("/cotizar?enviado=1")
}
