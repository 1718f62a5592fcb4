package domain

type Notification struct {
	ID        string   `db:"id" json:"id"`
	Type      string   `db:"type" json:"type"`
	ServiceID string   `db:"service_id" json:"serviceId"`
	Title     string   `db:"title" json:"title"`
	Message   string   `db:"message" json:"message"`
	CreatedAt string   `db:"created_at" json:"createdAt"`
	Read      bool     `db:"read" json:"read"`
	OldPrice  *float64 `db:"old_price" json:"oldPrice,omitempty"`
	NewPrice  *float64 `db:"new_price" json:"newPrice,omitempty"`
}

const NotifPriceChange = "price-change"
