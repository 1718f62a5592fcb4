package services_test

import (
	"testing"
	"time"

	"festivo/internal/repos"
	"festivo/internal/services"
)

func pricingEnv(t *testing.T) (*services.PricingService, *services.NotificationService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	notif := services.NewNotificationService(repos.NewNotificationRepo(db))
	pricing := services.NewPricingService(repos.NewPricingRepo(db))
	pricing.Notify = notif
	return pricing, notif
}

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"$45,000":   45000,
		"$1,234.50": 1234.5,
		"500":       500,
		"gratis":    0,
		"":          0,
	}
	for in, want := range cases {
		if got := services.ParsePrice(in); got != want {
			t.Errorf("ParsePrice(%q): want %v, got %v", in, want, got)
		}
	}
}

func TestBestPromotionWinsNoStacking(t *testing.T) {
	pricing, _ := pricingEnv(t)
	if err := pricing.SetBasePrice("svc-1", 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := pricing.AddPromotion("svc-1", "Temporada", 10, "2024-01-01", "2024-12-31", true); err != nil {
		t.Fatal(err)
	}
	if _, err := pricing.AddPromotion("svc-1", "Flash", 25, "2024-06-01", "2024-06-30", true); err != nil {
		t.Fatal(err)
	}

	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	eff, err := pricing.EffectivePrice("svc-1", at)
	if err != nil {
		t.Fatal(err)
	}
	if eff == nil || eff.Price != 750 {
		t.Fatalf("want 750 from the 25%% promotion, got %+v", eff)
	}
	if eff.Promotion == nil || eff.Promotion.Percent != 25 {
		t.Fatalf("winner should be the 25%% promotion, got %+v", eff.Promotion)
	}

	// Outside the flash window only the 10% applies.
	at = time.Date(2024, 7, 1, 12, 0, 0, 0, time.Local)
	eff, _ = pricing.EffectivePrice("svc-1", at)
	if eff.Price != 900 {
		t.Fatalf("want 900, got %v", eff.Price)
	}
}

func TestPromotionWindowIsInclusive(t *testing.T) {
	pricing, _ := pricingEnv(t)
	_ = pricing.SetBasePrice("svc-2", 1000)
	if _, err := pricing.AddPromotion("svc-2", "Enero", 20, "2024-01-01", "2024-01-31", true); err != nil {
		t.Fatal(err)
	}

	lastSecond := time.Date(2024, 1, 31, 23, 59, 59, 0, time.Local)
	eff, _ := pricing.EffectivePrice("svc-2", lastSecond)
	if eff.Price != 800 {
		t.Fatalf("end date is inclusive: want 800, got %v", eff.Price)
	}

	nextMidnight := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	eff, _ = pricing.EffectivePrice("svc-2", nextMidnight)
	if eff.Price != 1000 {
		t.Fatalf("window over: want base 1000, got %v", eff.Price)
	}

	beforeStart := time.Date(2023, 12, 31, 23, 59, 59, 0, time.Local)
	eff, _ = pricing.EffectivePrice("svc-2", beforeStart)
	if eff.Price != 1000 {
		t.Fatalf("before start: want base 1000, got %v", eff.Price)
	}
}

func TestAddPromotionRejectsInvertedWindow(t *testing.T) {
	pricing, _ := pricingEnv(t)
	_, err := pricing.AddPromotion("svc-3", "Mala", 10, "2024-05-10", "2024-05-01", true)
	if err != services.ErrBadPromotionWindow {
		t.Fatalf("want ErrBadPromotionWindow, got %v", err)
	}
}

func TestAddPromotionCreatesZeroBaseRecord(t *testing.T) {
	pricing, _ := pricingEnv(t)
	if _, err := pricing.AddPromotion("svc-4", "Nueva", 15, "2024-01-01", "2024-01-31", true); err != nil {
		t.Fatal(err)
	}
	base, ok, err := pricing.BasePrice("svc-4")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || base != 0 {
		t.Fatalf("want zero-base record, got base=%v ok=%v", base, ok)
	}
}

func TestToggleAndDeletePromotion(t *testing.T) {
	pricing, _ := pricingEnv(t)
	_ = pricing.SetBasePrice("svc-5", 500)
	p, err := pricing.AddPromotion("svc-5", "Demo", 50, "2024-01-01", "2024-12-31", true)
	if err != nil {
		t.Fatal(err)
	}
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)

	if err := pricing.TogglePromotion("svc-5", p.ID); err != nil {
		t.Fatal(err)
	}
	eff, _ := pricing.EffectivePrice("svc-5", at)
	if eff.Price != 500 {
		t.Fatalf("paused promotion must not apply, got %v", eff.Price)
	}

	if err := pricing.TogglePromotion("svc-5", p.ID); err != nil {
		t.Fatal(err)
	}
	eff, _ = pricing.EffectivePrice("svc-5", at)
	if eff.Price != 250 {
		t.Fatalf("reactivated promotion must apply, got %v", eff.Price)
	}

	if err := pricing.DeletePromotion("svc-5", p.ID); err != nil {
		t.Fatal(err)
	}
	promos, _ := pricing.Promotions("svc-5")
	if len(promos) != 0 {
		t.Fatalf("promotion should be gone, got %d", len(promos))
	}
}

func TestSetBasePriceEmitsPriceChange(t *testing.T) {
	pricing, notif := pricingEnv(t)
	_ = pricing.SetBasePrice("svc-6", 1000)

	// Same value again: no notification.
	_ = pricing.SetBasePrice("svc-6", 1000)
	list, _ := notif.List(10)
	if len(list) != 0 {
		t.Fatalf("unchanged price must not notify, got %d", len(list))
	}

	if err := pricing.SetBasePrice("svc-6", 800); err != nil {
		t.Fatal(err)
	}
	list, _ = notif.List(10)
	if len(list) != 1 {
		t.Fatalf("want one notification, got %d", len(list))
	}
	n := list[0]
	if n.Type != "price-change" || n.OldPrice == nil || n.NewPrice == nil {
		t.Fatalf("malformed notification: %+v", n)
	}
	if *n.OldPrice != 1000 || *n.NewPrice != 800 {
		t.Fatalf("want 1000 -> 800, got %v -> %v", *n.OldPrice, *n.NewPrice)
	}
}

func TestEffectivePriceMissingRecord(t *testing.T) {
	pricing, _ := pricingEnv(t)
	eff, err := pricing.EffectivePrice("no-such", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if eff != nil {
		t.Fatalf("want nil for unknown service, got %+v", eff)
	}
}

func TestHasActivePromotion(t *testing.T) {
	pricing, _ := pricingEnv(t)
	_ = pricing.SetBasePrice("svc-7", 400)

	has, err := pricing.HasActivePromotion("svc-7")
	if err != nil || has {
		t.Fatalf("no promotion yet: has=%v err=%v", has, err)
	}

	today := time.Now().Format("2006-01-02")
	if _, err := pricing.AddPromotion("svc-7", "Hoy", 30, today, today, true); err != nil {
		t.Fatal(err)
	}
	has, err = pricing.HasActivePromotion("svc-7")
	if err != nil || !has {
		t.Fatalf("promotion live today: has=%v err=%v", has, err)
	}
}
