package repos

import (
	"database/sql"
	"time"

	"festivo/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PricingRepo struct{ db *sqlx.DB }

func NewPricingRepo(db *sqlx.DB) *PricingRepo { return &PricingRepo{db: db} }

func (r *PricingRepo) Get(serviceID string) (*domain.PricingData, error) {
	var p domain.PricingData
	err := r.db.Get(&p, `
	  SELECT service_id, base, COALESCE(last_updated,'') AS last_updated
	  FROM pricing WHERE service_id = ?
	`, serviceID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertBase overwrites (or creates) the base price and stamps last_updated.
func (r *PricingRepo) UpsertBase(serviceID string, base float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO pricing(service_id, base, last_updated) VALUES(?,?,?)
	  ON CONFLICT(service_id) DO UPDATE SET base = excluded.base, last_updated = excluded.last_updated
	`, serviceID, base, time.Now().UTC().Format(time.RFC3339))
	return err
}

// InsertIfAbsent seeds a base price without touching an existing record.
func (r *PricingRepo) InsertIfAbsent(serviceID string, base float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO pricing(service_id, base, last_updated) VALUES(?,?,?)
	  ON CONFLICT(service_id) DO NOTHING
	`, serviceID, base, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *PricingRepo) Touch(serviceID string) error {
	_, err := r.db.Exec(`UPDATE pricing SET last_updated=? WHERE service_id=?`,
		time.Now().UTC().Format(time.RFC3339), serviceID)
	return err
}

func (r *PricingRepo) Promotions(serviceID string) ([]domain.Promotion, error) {
	promos := []domain.Promotion{}
	err := r.db.Select(&promos, `
	  SELECT id, service_id, label, percent, start_date, end_date, active, created_at
	  FROM promotions
	  WHERE service_id = ?
	  ORDER BY datetime(created_at) DESC
	`, serviceID)
	return promos, err
}

func (r *PricingRepo) InsertPromotion(p domain.Promotion) error {
	_, err := r.db.Exec(`
	  INSERT INTO promotions(id,service_id,label,percent,start_date,end_date,active,created_at)
	  VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.ServiceID, p.Label, p.Percent, p.Start, p.End, p.Active)
	return err
}

func (r *PricingRepo) TogglePromotion(serviceID, promoID string) error {
	_, err := r.db.Exec(`
	  UPDATE promotions SET active = NOT active WHERE id=? AND service_id=?
	`, promoID, serviceID)
	return err
}

func (r *PricingRepo) DeletePromotion(serviceID, promoID string) error {
	_, err := r.db.Exec(`DELETE FROM promotions WHERE id=? AND service_id=?`, promoID, serviceID)
	return err
}
