package repos

import (
	"database/sql"

	"festivo/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AvailabilityRepo struct{ db *sqlx.DB }

func NewAvailabilityRepo(db *sqlx.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// Get returns the day record, or nil if the date has never been touched.
func (r *AvailabilityRepo) Get(serviceID, date string) (*domain.AvailabilityDay, error) {
	var d domain.AvailabilityDay
	err := r.db.Get(&d, `
	  SELECT service_id, date, status, capacity, used, COALESCE(notes,'') AS notes
	  FROM availability_days
	  WHERE service_id = ? AND date = ?
	`, serviceID, date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *AvailabilityRepo) Insert(d domain.AvailabilityDay) error {
	_, err := r.db.Exec(`
	  INSERT INTO availability_days(service_id,date,status,capacity,used,notes)
	  VALUES(?,?,?,?,?,?)
	`, d.ServiceID, d.Date, d.Status, d.Capacity, d.Used, d.Notes)
	return err
}

func (r *AvailabilityRepo) SetStatus(serviceID, date, status string) error {
	_, err := r.db.Exec(`
	  UPDATE availability_days SET status=? WHERE service_id=? AND date=?
	`, status, serviceID, date)
	return err
}

func (r *AvailabilityRepo) SetCapacity(serviceID, date string, capacity int) error {
	_, err := r.db.Exec(`
	  UPDATE availability_days SET capacity=? WHERE service_id=? AND date=?
	`, capacity, serviceID, date)
	return err
}

func (r *AvailabilityRepo) SetUsage(serviceID, date string, used, capacity int, status string) error {
	_, err := r.db.Exec(`
	  UPDATE availability_days SET used=?, capacity=?, status=?
	  WHERE service_id=? AND date=?
	`, used, capacity, status, serviceID, date)
	return err
}

func (r *AvailabilityRepo) ServiceDays(serviceID string) ([]domain.AvailabilityDay, error) {
	days := []domain.AvailabilityDay{}
	err := r.db.Select(&days, `
	  SELECT service_id, date, status, capacity, used, COALESCE(notes,'') AS notes
	  FROM availability_days
	  WHERE service_id = ?
	  ORDER BY date
	`, serviceID)
	return days, err
}

// ServicesWithAvailability lists ids of services that have at least one day record.
func (r *AvailabilityRepo) ServicesWithAvailability() ([]string, error) {
	var ids []string
	err := r.db.Select(&ids, `SELECT DISTINCT service_id FROM availability_days ORDER BY service_id`)
	return ids, err
}
