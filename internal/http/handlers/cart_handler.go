package handlers

import (
	"festivo/internal/domain"
	"festivo/internal/log"
	"festivo/internal/services"
	"festivo/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	v, err := h.Cart.View(sid)
	if err != nil {
		log.Error(c, "cart.view.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar el carrito."})
	}
	coupons, _ := h.Cart.AvailableCoupons()
	return render(c, "cart", fiber.Map{"Cart": v, "Coupons": coupons, "Mode": string(v.ShippingMode)})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("service_id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "service_id"})
		return c.Redirect("/carrito")
	}
	qty := validate.Qty(c.FormValue("qty"))
	if err := h.Cart.Add(sid, id, qty); err != nil {
		log.Error(c, "cart.add.error", err, map[string]any{"service": id})
		return c.Redirect("/carrito")
	}
	log.Audit(c, "cart.add", map[string]any{"service": id, "qty": qty})
	return c.Redirect("/carrito")
}

func (h *CartHandler) UpdateQty(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("service_id"))
	if !ok {
		return c.Redirect("/carrito")
	}
	qty := validate.Qty(c.FormValue("qty"))
	if err := h.Cart.UpdateQty(sid, id, qty); err != nil {
		log.Error(c, "cart.update.error", err, map[string]any{"service": id})
	}
	return c.Redirect("/carrito")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("service_id"))
	if !ok {
		return c.Redirect("/carrito")
	}
	if err := h.Cart.Remove(sid, id); err != nil {
		log.Error(c, "cart.remove.error", err, map[string]any{"service": id})
	}
	log.Audit(c, "cart.remove", map[string]any{"service": id})
	return c.Redirect("/carrito")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		log.Error(c, "cart.clear.error", err, nil)
	}
	log.Audit(c, "cart.clear", nil)
	return c.Redirect("/carrito")
}

func (h *CartHandler) ApplyCoupon(c *fiber.Ctx) error {
	sid := ensureSID(c)
	code := c.FormValue("code")
	applied, err := h.Cart.ApplyCoupon(sid, code)
	if err != nil {
		log.Error(c, "cart.coupon.error", err, map[string]any{"code": code})
		return c.Redirect("/carrito")
	}
	if !applied {
		log.Security(c, "cart.coupon.invalid", map[string]any{"code": code})
		return c.Redirect("/carrito?cupon=invalido")
	}
	log.Audit(c, "cart.coupon.applied", map[string]any{"code": code})
	return c.Redirect("/carrito")
}

func (h *CartHandler) RemoveCoupon(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.RemoveCoupon(sid); err != nil {
		log.Error(c, "cart.coupon.remove.error", err, nil)
	}
	return c.Redirect("/carrito")
}

func (h *CartHandler) SetShipping(c *fiber.Ctx) error {
	sid := ensureSID(c)
	mode, ok := validate.ShippingMode(c.FormValue("mode"))
	if !ok {
		mode = string(domain.ShippingStandard)
	}
	if err := h.Cart.SetShippingMode(sid, domain.ShippingMode(mode)); err != nil {
		log.Error(c, "cart.shipping.error", err, map[string]any{"mode": mode})
	}
	return c.Redirect("/carrito")
}
