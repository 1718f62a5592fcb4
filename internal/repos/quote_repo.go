package repos

import (
	"github.com/jmoiron/sqlx"
)

type QuoteRepo struct{ db *sqlx.DB }

func NewQuoteRepo(db *sqlx.DB) *QuoteRepo { return &QuoteRepo{db: db} }

type QuoteRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	EventType    string `db:"event_type"`
	EventDate    string `db:"event_date"`
	GuestCount   int    `db:"guest_count"`
	Budget       string `db:"budget"`
	ServicesJSON string `db:"services_json"`
	Message      string `db:"message"`
	CreatedAt    string `db:"created_at"`
}

func (r *QuoteRepo) Insert(q QuoteRow) error {
	_, err := r.db.Exec(`
	  INSERT INTO quotes(id,name,email,phone,event_type,event_date,guest_count,budget,services_json,message,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, q.ID, q.Name, q.Email, q.Phone, q.EventType, q.EventDate, q.GuestCount, q.Budget, q.ServicesJSON, q.Message)
	return err
}

func (r *QuoteRepo) ListLatest(limit int) ([]QuoteRow, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []QuoteRow{}
	err := r.db.Select(&out, `
	  SELECT id, name, email, COALESCE(phone,'') AS phone, event_type,
	         COALESCE(event_date,'') AS event_date, guest_count,
	         COALESCE(budget,'') AS budget, COALESCE(services_json,'') AS services_json,
	         COALESCE(message,'') AS message, created_at
	  FROM quotes
	  ORDER BY datetime(created_at) DESC, rowid DESC
	  LIMIT ?
	`, limit)
	return out, err
}
