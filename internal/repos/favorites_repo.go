package repos

import (
	"time"

	"festivo/internal/domain"

	"github.com/jmoiron/sqlx"
)

type FavoritesRepo struct{ db *sqlx.DB }

func NewFavoritesRepo(db *sqlx.DB) *FavoritesRepo { return &FavoritesRepo{db: db} }

func (r *FavoritesRepo) Ensure(sessionID string) (string, error) {
	var id string
	if err := r.db.Get(&id, `SELECT id FROM favorites WHERE session_id=?`, sessionID); err == nil {
		return id, nil
	}
	_, err := r.db.Exec(`INSERT INTO favorites(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *FavoritesRepo) Add(favoritesID, serviceID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO favorite_items(favorites_id, service_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(favorites_id, service_id) DO NOTHING
	`, favoritesID, serviceID)
	return err
}

func (r *FavoritesRepo) Remove(favoritesID, serviceID string) error {
	_, err := r.db.Exec(`DELETE FROM favorite_items WHERE favorites_id=? AND service_id=?`, favoritesID, serviceID)
	return err
}

func (r *FavoritesRepo) Has(favoritesID, serviceID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM favorite_items WHERE favorites_id=? AND service_id=?`, favoritesID, serviceID)
	return n > 0, err
}

func (r *FavoritesRepo) Clear(favoritesID string) error {
	_, err := r.db.Exec(`DELETE FROM favorite_items WHERE favorites_id=?`, favoritesID)
	return err
}

func (r *FavoritesRepo) List(favoritesID string) ([]domain.Service, error) {
	out := []domain.Service{}
	err := r.db.Select(&out, `
	  SELECT s.id, s.event_type, s.category, s.title,
	         COALESCE(s.description,'') AS description,
	         COALESCE(s.location,'') AS location,
	         COALESCE(s.duration,'') AS duration,
	         s.price, s.rating, s.featured,
	         COALESCE(s.image,'') AS image,
	         s.capacity, s.max_per_cart, s.active,
	         s.created_at, COALESCE(s.updated_at,'') AS updated_at
	  FROM favorite_items fi
	  JOIN services s ON s.id = fi.service_id
	  WHERE fi.favorites_id = ?
	  ORDER BY fi.created_at
	`, favoritesID)
	return out, err
}
