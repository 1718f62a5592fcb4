package repos

import (
	"database/sql"
	"time"

	"festivo/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewCols = `
    id, service_id, user_id, user_name, rating, COALESCE(comment,'') AS comment, status,
    COALESCE(response_text,'') AS response_text, COALESCE(responded_at,'') AS responded_at,
    COALESCE(responder_id,'') AS responder_id, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ReviewRepo) Insert(rev domain.Review) error {
	_, err := r.db.Exec(`
	  INSERT INTO reviews(id,service_id,user_id,user_name,rating,comment,status,created_at)
	  VALUES(?,?,?,?,?,?,?,?)
	`, rev.ID, rev.ServiceID, rev.UserID, rev.UserName, rev.Rating, rev.Comment, rev.Status, rev.CreatedAt)
	return err
}

func (r *ReviewRepo) Update(id string, rating int, comment string) error {
	_, err := r.db.Exec(`
	  UPDATE reviews SET rating=?, comment=?, updated_at=? WHERE id=?
	`, rating, comment, time.Now().UTC().Format(time.RFC3339), id)
	return err
}

func (r *ReviewRepo) Respond(id, responderID, text string) error {
	_, err := r.db.Exec(`
	  UPDATE reviews SET response_text=?, responded_at=?, responder_id=?, status=? WHERE id=?
	`, text, time.Now().UTC().Format(time.RFC3339), responderID, domain.ReviewResponded, id)
	return err
}

func (r *ReviewRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM reviews WHERE id=?`, id)
	return err
}

func (r *ReviewRepo) Get(id string) (*domain.Review, error) {
	var rev domain.Review
	err := r.db.Get(&rev, `SELECT `+reviewCols+` FROM reviews WHERE id=?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepo) ByService(serviceID string) ([]domain.Review, error) {
	out := []domain.Review{}
	err := r.db.Select(&out, `
	  SELECT `+reviewCols+`
	  FROM reviews WHERE service_id=?
	  ORDER BY datetime(created_at) DESC, rowid DESC
	`, serviceID)
	return out, err
}

func (r *ReviewRepo) UserReview(serviceID, userID string) (*domain.Review, error) {
	var rev domain.Review
	err := r.db.Get(&rev, `
	  SELECT `+reviewCols+` FROM reviews WHERE service_id=? AND user_id=?
	`, serviceID, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// ReviewFilter narrows Filter results; zero values mean "no constraint".
type ReviewFilter struct {
	ServiceID string
	Status    string
	MinRating int
	MaxRating int
}

func (r *ReviewRepo) Filter(f ReviewFilter) ([]domain.Review, error) {
	where := `1=1`
	args := []any{}
	if f.ServiceID != "" {
		where += ` AND service_id=?`
		args = append(args, f.ServiceID)
	}
	if f.Status != "" {
		where += ` AND status=?`
		args = append(args, f.Status)
	}
	if f.MinRating > 0 {
		where += ` AND rating>=?`
		args = append(args, f.MinRating)
	}
	if f.MaxRating > 0 {
		where += ` AND rating<=?`
		args = append(args, f.MaxRating)
	}
	out := []domain.Review{}
	err := r.db.Select(&out, `
	  SELECT `+reviewCols+` FROM reviews WHERE `+where+`
	  ORDER BY datetime(created_at) DESC, rowid DESC
	`, args...)
	return out, err
}
