package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"festivo/internal/domain"
	"festivo/internal/repos"

	"github.com/google/uuid"
)

var ErrBadPromotionWindow = errors.New("promotion start date is after end date")

type PricingService struct {
	Repo   *repos.PricingRepo
	Notify NotificationSink // optional
}

func NewPricingService(r *repos.PricingRepo) *PricingService {
	return &PricingService{Repo: r}
}

// ParsePrice turns a formatted catalog price ("$45,000") into a number.
// Unparsable input yields 0 rather than an error.
func ParsePrice(v string) float64 {
	var b strings.Builder
	for _, r := range v {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}

// SeedFromCatalog creates a pricing record for every catalog service that
// lacks one, parsing the formatted price string into the base. Existing
// records are never overwritten.
func (s *PricingService) SeedFromCatalog(catalog []domain.Service) error {
	for _, svc := range catalog {
		existing, err := s.Repo.Get(svc.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.Repo.InsertIfAbsent(svc.ID, ParsePrice(svc.Price)); err != nil {
			return err
		}
	}
	return nil
}

func (s *PricingService) BasePrice(serviceID string) (float64, bool, error) {
	p, err := s.Repo.Get(serviceID)
	if err != nil || p == nil {
		return 0, false, err
	}
	return p.Base, true, nil
}

// SetBasePrice overwrites (or creates) the base price and, when the price
// actually changed, drops a price-change record into the notification log.
func (s *PricingService) SetBasePrice(serviceID string, newBase float64) error {
	old, err := s.Repo.Get(serviceID)
	if err != nil {
		return err
	}
	if err := s.Repo.UpsertBase(serviceID, newBase); err != nil {
		return err
	}
	if s.Notify != nil && old != nil && old.Base != newBase {
		oldBase := old.Base
		s.Notify.Notify(domain.Notification{
			Type:      domain.NotifPriceChange,
			ServiceID: serviceID,
			Title:     "Precio actualizado",
			Message:   fmt.Sprintf("El precio base cambió de %.0f a %.0f.", oldBase, newBase),
			OldPrice:  &oldBase,
			NewPrice:  &newBase,
		})
	}
	return nil
}

// AddPromotion appends a promotion with a generated id, creating the pricing
// record with base 0 if none exists yet.
func (s *PricingService) AddPromotion(serviceID, label string, percent int, start, end string, active bool) (domain.Promotion, error) {
	if start > end {
		return domain.Promotion{}, ErrBadPromotionWindow
	}
	if err := s.Repo.InsertIfAbsent(serviceID, 0); err != nil {
		return domain.Promotion{}, err
	}
	p := domain.Promotion{
		ID:        uuid.NewString(),
		ServiceID: serviceID,
		Label:     label,
		Percent:   percent,
		Start:     start,
		End:       end,
		Active:    active,
	}
	if err := s.Repo.InsertPromotion(p); err != nil {
		return domain.Promotion{}, err
	}
	return p, s.Repo.Touch(serviceID)
}

func (s *PricingService) TogglePromotion(serviceID, promoID string) error {
	if err := s.Repo.TogglePromotion(serviceID, promoID); err != nil {
		return err
	}
	return s.Repo.Touch(serviceID)
}

func (s *PricingService) DeletePromotion(serviceID, promoID string) error {
	if err := s.Repo.DeletePromotion(serviceID, promoID); err != nil {
		return err
	}
	return s.Repo.Touch(serviceID)
}

func (s *PricingService) Promotions(serviceID string) ([]domain.Promotion, error) {
	return s.Repo.Promotions(serviceID)
}

// inWindow reports whether the instant falls inside the promotion's day
// range, inclusive on both ends (start 00:00:00 through end 23:59:59).
func inWindow(at time.Time, start, end string) bool {
	ds, err := time.ParseInLocation("2006-01-02", start, at.Location())
	if err != nil {
		return false
	}
	de, err := time.ParseInLocation("2006-01-02", end, at.Location())
	if err != nil {
		return false
	}
	de = de.Add(24*time.Hour - time.Second)
	return !at.Before(ds) && !at.After(de)
}

// EffectivePrice resolves the price for a service at a given instant: the
// single active in-window promotion with the highest percent wins (no
// stacking); otherwise the base price. Returns nil if the service has no
// pricing record.
func (s *PricingService) EffectivePrice(serviceID string, at time.Time) (*domain.EffectivePrice, error) {
	data, err := s.Repo.Get(serviceID)
	if err != nil || data == nil {
		return nil, err
	}
	promos, err := s.Repo.Promotions(serviceID)
	if err != nil {
		return nil, err
	}
	var best *domain.Promotion
	for i := range promos {
		p := &promos[i]
		if !p.Active || !inWindow(at, p.Start, p.End) {
			continue
		}
		if best == nil || p.Percent > best.Percent {
			best = p
		}
	}
	if best == nil {
		return &domain.EffectivePrice{Price: data.Base}, nil
	}
	discounted := math.Round(data.Base * (1 - float64(best.Percent)/100))
	return &domain.EffectivePrice{Price: discounted, Promotion: best}, nil
}

// HasActivePromotion is true iff the effective price right now is strictly
// below the base price.
func (s *PricingService) HasActivePromotion(serviceID string) (bool, error) {
	eff, err := s.EffectivePrice(serviceID, time.Now())
	if err != nil || eff == nil {
		return false, err
	}
	base, ok, err := s.BasePrice(serviceID)
	if err != nil || !ok {
		return false, err
	}
	return eff.Price < base, nil
}
