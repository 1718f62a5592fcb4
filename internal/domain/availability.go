package domain

// AvailabilityDay is the booking state of one service on one calendar date.
// A date with no row is open: not blocked and with no capacity set yet.
type AvailabilityDay struct {
	ServiceID string `db:"service_id" json:"serviceId"`
	Date      string `db:"date" json:"date"` // YYYY-MM-DD
	Status    string `db:"status" json:"status"`
	Capacity  int    `db:"capacity" json:"capacity"`
	Used      int    `db:"used" json:"used"`
	Notes     string `db:"notes" json:"notes,omitempty"`
}

const (
	DayAvailable = "available"
	DayBlocked   = "blocked"
	DayBooked    = "booked"
)
