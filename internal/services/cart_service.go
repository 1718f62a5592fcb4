package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"festivo/internal/domain"
	"festivo/internal/repos"
)

const (
	defaultMaxQty = 99
	taxRate       = 0.16 // IVA
)

var shippingFees = map[domain.ShippingMode]float64{
	domain.ShippingStandard: 149,
	domain.ShippingExpress:  299,
	domain.ShippingPickup:   0,
}

type CartService struct {
	Carts    *repos.CartRepo
	Services *repos.ServiceRepo
	Pricing  *PricingService
	Notify   NotificationSink // optional
}

func NewCartService(carts *repos.CartRepo, services *repos.ServiceRepo, pricing *PricingService) *CartService {
	return &CartService{Carts: carts, Services: services, Pricing: pricing}
}

// CartView carries the lines plus every derived value, recomputed on read.
type CartView struct {
	Lines        []repos.CartLine
	Subtotal     float64
	Discount     float64
	Shipping     float64
	Tax          float64
	Total        float64
	ItemCount    int
	Coupon       *domain.Coupon
	ShippingMode domain.ShippingMode
}

func clampQty(qty, maxQty int) int {
	if maxQty <= 0 {
		maxQty = defaultMaxQty
	}
	if qty < 1 {
		qty = 1
	}
	if qty > maxQty {
		qty = maxQty
	}
	return qty
}

// Add puts a service in the cart, or bumps the quantity of an existing line,
// clamped to the per-service limit (default 99). The unit price is the
// effective (promotion-aware) price at add time.
func (s *CartService) Add(sessionID, serviceID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	svc, err := s.Services.Get(serviceID)
	if err != nil {
		return err
	}

	unitPrice := ParsePrice(svc.Price)
	if s.Pricing != nil {
		if eff, err := s.Pricing.EffectivePrice(serviceID, time.Now()); err == nil && eff != nil {
			unitPrice = eff.Price
		}
	}

	existing, err := s.Carts.LineQty(cartID, serviceID)
	if err != nil {
		return err
	}
	newQty := clampQty(existing+qty, svc.MaxPerCart)
	if err := s.Carts.UpsertLine(cartID, serviceID, newQty, svc.MaxPerCart, unitPrice); err != nil {
		return err
	}

	if s.Notify != nil {
		if existing > 0 {
			s.Notify.Notify(domain.Notification{
				Type:      domain.NotifPriceChange,
				ServiceID: serviceID,
				Title:     "Cantidad actualizada",
				Message:   fmt.Sprintf("Ahora tienes %d × %s en el carrito.", newQty, svc.Title),
			})
		} else {
			s.Notify.Notify(domain.Notification{
				Type:      domain.NotifPriceChange,
				ServiceID: serviceID,
				Title:     "Añadido al carrito",
				Message:   fmt.Sprintf("%s agregado al carrito.", svc.Title),
			})
		}
	}
	return nil
}

// UpdateQty clamps into [1, max] and is a no-op for absent lines.
func (s *CartService) UpdateQty(sessionID, serviceID string, qty int) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	existing, err := s.Carts.LineQty(cartID, serviceID)
	if err != nil {
		return err
	}
	if existing == 0 {
		return nil
	}
	svc, err := s.Services.Get(serviceID)
	if err != nil {
		return err
	}
	return s.Carts.SetQty(cartID, serviceID, clampQty(qty, svc.MaxPerCart))
}

func (s *CartService) Remove(sessionID, serviceID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveLine(cartID, serviceID)
}

// Clear empties the cart and drops the applied coupon with it.
func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

// ApplyCoupon matches the code (trimmed, case-insensitive) against the
// coupon catalog. A match replaces any previously applied coupon; a miss
// returns false with the cart untouched.
func (s *CartService) ApplyCoupon(sessionID, code string) (bool, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return false, err
	}
	cp, err := s.Carts.FindCoupon(strings.TrimSpace(code))
	if err != nil {
		return false, err
	}
	if cp == nil {
		return false, nil
	}
	if err := s.Carts.SetCoupon(cartID, &cp.Code); err != nil {
		return false, err
	}
	if s.Notify != nil {
		s.Notify.Notify(domain.Notification{
			Type:      domain.NotifPriceChange,
			ServiceID: "coupon-" + cp.Code,
			Title:     "Cupón aplicado",
			Message:   fmt.Sprintf("Se aplicó el cupón %s.", cp.Code),
		})
	}
	return true, nil
}

func (s *CartService) RemoveCoupon(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.SetCoupon(cartID, nil)
}

func (s *CartService) SetShippingMode(sessionID string, mode domain.ShippingMode) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	if _, ok := shippingFees[mode]; !ok {
		mode = domain.ShippingStandard
	}
	return s.Carts.SetShippingMode(cartID, mode)
}

func (s *CartService) AvailableCoupons() ([]domain.Coupon, error) {
	return s.Carts.ListCoupons()
}

// View recomputes every derived value from the stored lines:
//
//	discount = subtotal*value/100 (percent) or min(value, subtotal) (fixed)
//	tax      = round((subtotal-discount) * 16%)
//	total    = max(0, taxable + tax + shipping)
//
// Shipping is 0 for an empty cart regardless of mode.
func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return CartView{}, err
	}
	coupon, mode, err := s.Carts.State(cartID)
	if err != nil {
		return CartView{}, err
	}

	v := CartView{Lines: lines, Coupon: coupon, ShippingMode: mode}
	for _, l := range lines {
		v.Subtotal += l.UnitPrice * float64(l.Qty)
		v.ItemCount += l.Qty
	}
	if coupon != nil {
		switch coupon.Kind {
		case domain.CouponPercent:
			v.Discount = v.Subtotal * coupon.Value / 100
		case domain.CouponFixed:
			v.Discount = math.Min(coupon.Value, v.Subtotal)
		}
	}
	if len(lines) > 0 {
		v.Shipping = shippingFees[mode]
	}
	taxable := v.Subtotal - v.Discount
	v.Tax = math.Round(taxable * taxRate)
	v.Total = math.Max(0, taxable+v.Tax+v.Shipping)
	return v, nil
}
