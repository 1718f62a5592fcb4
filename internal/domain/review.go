package domain

type Review struct {
	ID           string `db:"id" json:"id"`
	ServiceID    string `db:"service_id" json:"serviceId"`
	UserID       string `db:"user_id" json:"userId"`
	UserName     string `db:"user_name" json:"userName"`
	Rating       int    `db:"rating" json:"rating"` // 1-5
	Comment      string `db:"comment" json:"comment"`
	Status       string `db:"status" json:"status"` // pending | responded
	ResponseText string `db:"response_text" json:"responseText,omitempty"`
	RespondedAt  string `db:"responded_at" json:"respondedAt,omitempty"`
	ResponderID  string `db:"responder_id" json:"responderId,omitempty"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
	UpdatedAt    string `db:"updated_at" json:"updatedAt,omitempty"`
}

const (
	ReviewPending   = "pending"
	ReviewResponded = "responded"
)

type ReviewStats struct {
	Average      float64     `json:"average"`
	Count        int         `json:"count"`
	Distribution map[int]int `json:"distribution"`
}
