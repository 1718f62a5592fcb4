package domain

// Promotion is a time-bounded percentage discount on one service's base price.
// Promotions never auto-expire; the date window is checked at read time.
type Promotion struct {
	ID        string `db:"id" json:"id"`
	ServiceID string `db:"service_id" json:"serviceId"`
	Label     string `db:"label" json:"label"`
	Percent   int    `db:"percent" json:"percent"` // 1-99
	Start     string `db:"start_date" json:"start"`
	End       string `db:"end_date" json:"end"`
	Active    bool   `db:"active" json:"active"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type PricingData struct {
	ServiceID   string  `db:"service_id" json:"serviceId"`
	Base        float64 `db:"base" json:"base"`
	LastUpdated string  `db:"last_updated" json:"lastUpdated"`
}

// EffectivePrice is the resolved price for a service on a date: the base
// price discounted by the best in-window promotion, if any qualified.
type EffectivePrice struct {
	Price     float64    `json:"price"`
	Promotion *Promotion `json:"appliedPromotion,omitempty"`
}
