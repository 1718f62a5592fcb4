package repos

import (
	"festivo/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NotificationRepo struct{ db *sqlx.DB }

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) Insert(n domain.Notification) error {
	_, err := r.db.Exec(`
	  INSERT INTO notifications(id,type,service_id,title,message,created_at,read,old_price,new_price)
	  VALUES(?,?,?,?,?,?,?,?,?)
	`, n.ID, n.Type, n.ServiceID, n.Title, n.Message, n.CreatedAt, n.Read, n.OldPrice, n.NewPrice)
	return err
}

func (r *NotificationRepo) List(limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Notification{}
	err := r.db.Select(&out, `
	  SELECT id, type, COALESCE(service_id,'') AS service_id, title,
	         COALESCE(message,'') AS message, created_at, read, old_price, new_price
	  FROM notifications
	  ORDER BY datetime(created_at) DESC, rowid DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *NotificationRepo) ListByType(notifType string, limit int) ([]domain.Notification, error) {
	out := []domain.Notification{}
	err := r.db.Select(&out, `
	  SELECT id, type, COALESCE(service_id,'') AS service_id, title,
	         COALESCE(message,'') AS message, created_at, read, old_price, new_price
	  FROM notifications
	  WHERE type = ?
	  ORDER BY datetime(created_at) DESC, rowid DESC
	  LIMIT ?
	`, notifType, limit)
	return out, err
}

func (r *NotificationRepo) MarkRead(id string) error {
	_, err := r.db.Exec(`UPDATE notifications SET read=1 WHERE id=?`, id)
	return err
}

func (r *NotificationRepo) MarkAllRead() error {
	_, err := r.db.Exec(`UPDATE notifications SET read=1 WHERE read=0`)
	return err
}

func (r *NotificationRepo) UnreadCount() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM notifications WHERE read=0`)
	return n, err
}
