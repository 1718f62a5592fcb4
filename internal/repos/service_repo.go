package repos

import (
	"festivo/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ServiceRepo struct{ db *sqlx.DB }

func NewServiceRepo(db *sqlx.DB) *ServiceRepo { return &ServiceRepo{db: db} }

const serviceCols = `
    id, event_type, category, title,
    COALESCE(description,'') AS description,
    COALESCE(location,'')    AS location,
    COALESCE(duration,'')    AS duration,
    price, rating, featured,
    COALESCE(image,'') AS image,
    capacity, max_per_cart, active,
    created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ServiceRepo) ListEventTypes() ([]domain.EventType, error) {
	var out []domain.EventType
	err := r.db.Select(&out, `
	  SELECT id, name, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM event_types
	  ORDER BY name
	`)
	return out, err
}

func (r *ServiceRepo) ListByEventType(eventType string, limit, offset int) ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.Select(&out, `
	  SELECT `+serviceCols+`
	  FROM services
	  WHERE event_type = ? AND active = 1
	  ORDER BY featured DESC, rating DESC
	  LIMIT ? OFFSET ?
	`, eventType, limit, offset)
	return out, err
}

func (r *ServiceRepo) ListActive() ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.Select(&out, `
	  SELECT `+serviceCols+`
	  FROM services
	  WHERE active = 1
	  ORDER BY event_type, category, title
	`)
	return out, err
}

func (r *ServiceRepo) Get(id string) (domain.Service, error) {
	var s domain.Service
	err := r.db.Get(&s, `
	  SELECT `+serviceCols+`
	  FROM services
	  WHERE id = ?
	`, id)
	return s, err
}

func (r *ServiceRepo) Search(q, eventType, category string, limit, offset int) ([]domain.Service, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if eventType != "" {
		where += ` AND event_type = ?`
		args = append(args, eventType)
	}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}

	query := `
	  SELECT ` + serviceCols + `
	  FROM services
	  WHERE ` + where + `
	  ORDER BY featured DESC, rating DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Service
	err := r.db.Select(&out, query, args...)
	return out, err
}

// Insert adds a provider-created service to the catalog.
func (r *ServiceRepo) Insert(s domain.Service) error {
	_, err := r.db.Exec(`
	  INSERT INTO services(id,event_type,category,title,description,location,duration,price,
	                       rating,featured,image,capacity,max_per_cart,active,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,1,CURRENT_TIMESTAMP)
	`, s.ID, s.EventType, s.Category, s.Title, s.Description, s.Location, s.Duration, s.Price,
		s.Rating, s.Featured, s.Image, s.Capacity, s.MaxPerCart)
	return err
}
