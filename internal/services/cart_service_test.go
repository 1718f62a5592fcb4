package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"festivo/internal/domain"
	"festivo/internal/repos"
	"festivo/internal/services"
)

func cartEnv(t *testing.T) (*sqlx.DB, *services.CartService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	pricing := services.NewPricingService(repos.NewPricingRepo(db))
	cart := services.NewCartService(repos.NewCartRepo(db), repos.NewServiceRepo(db), pricing)
	return db, cart
}

// addTestService inserts a catalog row with a known formatted price.
func addTestService(t *testing.T, db *sqlx.DB, id, price string, maxPerCart int) {
	t.Helper()
	_, err := db.Exec(`
	  INSERT INTO services(id,event_type,category,title,price,max_per_cart)
	  VALUES(?,?,?,?,?,?)
	`, id, "formales", "Catering", "Servicio de prueba "+id, price, maxPerCart)
	if err != nil {
		t.Fatal(err)
	}
}

func TestCartTotalsWithPercentCoupon(t *testing.T) {
	db, cart := cartEnv(t)
	addTestService(t, db, "test-a", "$500", 0)

	if err := cart.Add("sess-1", "test-a", 2); err != nil {
		t.Fatal(err)
	}
	if ok, err := cart.ApplyCoupon("sess-1", "BIENVENIDO10"); err != nil || !ok {
		t.Fatalf("apply coupon: ok=%v err=%v", ok, err)
	}

	v, err := cart.View("sess-1")
	if err != nil {
		t.Fatal(err)
	}
	// 1000 - 10% = 900 taxable; IVA 144; standard shipping 149
	if v.Subtotal != 1000 {
		t.Fatalf("subtotal: want 1000, got %v", v.Subtotal)
	}
	if v.Discount != 100 {
		t.Fatalf("discount: want 100, got %v", v.Discount)
	}
	if v.Tax != 144 {
		t.Fatalf("tax: want 144, got %v", v.Tax)
	}
	if v.Shipping != 149 {
		t.Fatalf("shipping: want 149, got %v", v.Shipping)
	}
	if v.Total != 1193 {
		t.Fatalf("total: want 1193, got %v", v.Total)
	}
}

func TestFixedCouponCapsAtSubtotal(t *testing.T) {
	db, cart := cartEnv(t)
	addTestService(t, db, "test-b", "$100", 0)

	if err := cart.Add("sess-2", "test-b", 1); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cart.ApplyCoupon("sess-2", "ENVIOGRATIS"); !ok {
		t.Fatal("coupon should apply")
	}

	v, err := cart.View("sess-2")
	if err != nil {
		t.Fatal(err)
	}
	// fixed value 150 exceeds the 100 subtotal; cap at subtotal
	if v.Discount != 100 {
		t.Fatalf("discount: want 100, got %v", v.Discount)
	}
	if v.Tax != 0 {
		t.Fatalf("tax: want 0, got %v", v.Tax)
	}
	if v.Total != 149 { // shipping only
		t.Fatalf("total: want 149, got %v", v.Total)
	}
}

func TestQtyClampPerServiceLimit(t *testing.T) {
	_, cart := cartEnv(t)

	// inf-001 is seeded with max_per_cart = 3
	if err := cart.Add("sess-3", "inf-001", 2); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add("sess-3", "inf-001", 2); err != nil {
		t.Fatal(err)
	}

	v, err := cart.View("sess-3")
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Lines) != 1 || v.Lines[0].Qty != 3 {
		t.Fatalf("want single line clamped to 3, got %+v", v.Lines)
	}

	if err := cart.UpdateQty("sess-3", "inf-001", 50); err != nil {
		t.Fatal(err)
	}
	v, _ = cart.View("sess-3")
	if v.Lines[0].Qty != 3 {
		t.Fatalf("update should clamp to 3, got %d", v.Lines[0].Qty)
	}
}

func TestUpdateQtyIgnoresAbsentLine(t *testing.T) {
	_, cart := cartEnv(t)
	if err := cart.UpdateQty("sess-4", "inf-001", 2); err != nil {
		t.Fatal(err)
	}
	v, _ := cart.View("sess-4")
	if len(v.Lines) != 0 {
		t.Fatalf("no line should have been created, got %+v", v.Lines)
	}
}

func TestEmptyCartHasNoShipping(t *testing.T) {
	_, cart := cartEnv(t)
	if err := cart.SetShippingMode("sess-5", "express"); err != nil {
		t.Fatal(err)
	}
	v, err := cart.View("sess-5")
	if err != nil {
		t.Fatal(err)
	}
	if v.Shipping != 0 || v.Total != 0 {
		t.Fatalf("empty cart must cost nothing, got shipping=%v total=%v", v.Shipping, v.Total)
	}
}

func TestShippingModes(t *testing.T) {
	db, cart := cartEnv(t)
	addTestService(t, db, "test-c", "$100", 0)
	if err := cart.Add("sess-6", "test-c", 1); err != nil {
		t.Fatal(err)
	}

	for mode, fee := range map[string]float64{"standard": 149, "express": 299, "pickup": 0} {
		if err := cart.SetShippingMode("sess-6", domain.ShippingMode(mode)); err != nil {
			t.Fatal(err)
		}
		v, _ := cart.View("sess-6")
		if v.Shipping != fee {
			t.Fatalf("%s: want fee %v, got %v", mode, fee, v.Shipping)
		}
	}
}

func TestCouponIsExclusive(t *testing.T) {
	db, cart := cartEnv(t)
	addTestService(t, db, "test-d", "$1,000", 0)
	if err := cart.Add("sess-7", "test-d", 1); err != nil {
		t.Fatal(err)
	}

	if ok, _ := cart.ApplyCoupon("sess-7", "  vip25  "); !ok {
		t.Fatal("vip25 should match case-insensitively")
	}
	if ok, _ := cart.ApplyCoupon("sess-7", "BIENVENIDO10"); !ok {
		t.Fatal("second coupon should apply")
	}

	v, _ := cart.View("sess-7")
	if v.Coupon == nil || v.Coupon.Code != "BIENVENIDO10" {
		t.Fatalf("second coupon must replace the first, got %+v", v.Coupon)
	}
	if v.Discount != 100 { // 10% of 1000, not 25%
		t.Fatalf("discount: want 100, got %v", v.Discount)
	}
}

func TestUnknownCouponLeavesCartUntouched(t *testing.T) {
	db, cart := cartEnv(t)
	addTestService(t, db, "test-e", "$200", 0)
	_ = cart.Add("sess-8", "test-e", 1)
	_, _ = cart.ApplyCoupon("sess-8", "VIP25")

	ok, err := cart.ApplyCoupon("sess-8", "NOEXISTE")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("unknown code must not apply")
	}
	v, _ := cart.View("sess-8")
	if v.Coupon == nil || v.Coupon.Code != "VIP25" {
		t.Fatalf("previous coupon must survive a failed apply, got %+v", v.Coupon)
	}
}

func TestClearDropsCoupon(t *testing.T) {
	db, cart := cartEnv(t)
	addTestService(t, db, "test-f", "$300", 0)
	_ = cart.Add("sess-9", "test-f", 1)
	_, _ = cart.ApplyCoupon("sess-9", "BIENVENIDO10")

	if err := cart.Clear("sess-9"); err != nil {
		t.Fatal(err)
	}
	v, _ := cart.View("sess-9")
	if len(v.Lines) != 0 || v.Coupon != nil {
		t.Fatalf("clear must drop lines and coupon, got lines=%d coupon=%+v", len(v.Lines), v.Coupon)
	}
}
