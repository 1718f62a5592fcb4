package domain

type EventType struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type Service struct {
	ID          string  `db:"id"`
	EventType   string  `db:"event_type"` // infantiles | formales | corporativos
	Category    string  `db:"category"`   // Catering, Fotografía, Música, ...
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Location    string  `db:"location"`
	Duration    string  `db:"duration"`
	Price       string  `db:"price"` // formatted catalog string, e.g. "$45,000"
	Rating      float64 `db:"rating"`
	Featured    bool    `db:"featured"`
	Image       string  `db:"image"`
	Capacity    int     `db:"capacity"`
	MaxPerCart  int     `db:"max_per_cart"` // 0 = no per-service limit
	Active      bool    `db:"active"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

// Coupon is a cart-wide discount rule from the fixed coupon catalog.
type Coupon struct {
	Code        string  `db:"code"`
	Kind        string  `db:"kind"` // percent | fixed
	Value       float64 `db:"value"`
	Description string  `db:"description"`
}

const (
	CouponPercent = "percent"
	CouponFixed   = "fixed"
)

type ShippingMode string

const (
	ShippingStandard ShippingMode = "standard"
	ShippingExpress  ShippingMode = "express"
	ShippingPickup   ShippingMode = "pickup"
)
