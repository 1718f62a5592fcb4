package repos

import (
	"database/sql"
	"time"

	"festivo/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is one service entry in the cart with its quantity.
type CartLine struct {
	ServiceID string  `db:"service_id"`
	Title     string  `db:"title"`
	Category  string  `db:"category"`
	Image     string  `db:"image"`
	Qty       int     `db:"qty"`
	UnitPrice float64 `db:"unit_price"`
	MaxQty    int     `db:"max_qty"` // 0 = default limit of 99
	Subtotal  float64 `db:"subtotal"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// LineQty returns the current quantity for a line, or 0 if absent.
func (r *CartRepo) LineQty(cartID, serviceID string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT qty FROM cart_items WHERE cart_id=? AND service_id=?`, cartID, serviceID)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return qty, err
}

func (r *CartRepo) UpsertLine(cartID, serviceID string, qty, maxQty int, unitPrice float64) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,service_id,qty,unit_price,max_qty,created_at)
		VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,service_id) DO UPDATE
		SET qty = excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, serviceID, qty, unitPrice, maxQty)
	return err
}

// SetQty updates an existing line's quantity. No-op if the line is absent.
func (r *CartRepo) SetQty(cartID, serviceID string, qty int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND service_id = ?
	`, qty, cartID, serviceID)
	return err
}

func (r *CartRepo) RemoveLine(cartID, serviceID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id=? AND service_id=?`, cartID, serviceID)
	return err
}

func (r *CartRepo) Lines(cartID string) ([]CartLine, error) {
	lines := []CartLine{}
	err := r.db.Select(&lines, `
	  SELECT ci.service_id, s.title, s.category, COALESCE(s.image,'') AS image,
	         ci.qty, ci.unit_price, ci.max_qty,
	         (ci.qty*ci.unit_price) AS subtotal
	  FROM cart_items ci JOIN services s ON s.id=ci.service_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at
	`, cartID)
	return lines, err
}

// Clear empties the cart and drops the applied coupon.
func (r *CartRepo) Clear(cartID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE carts SET coupon_code=NULL, updated_at=CURRENT_TIMESTAMP WHERE id=?`, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *CartRepo) SetCoupon(cartID string, code *string) error {
	_, err := r.db.Exec(`UPDATE carts SET coupon_code=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, code, cartID)
	return err
}

func (r *CartRepo) SetShippingMode(cartID string, mode domain.ShippingMode) error {
	_, err := r.db.Exec(`UPDATE carts SET shipping_mode=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, string(mode), cartID)
	return err
}

type cartRow struct {
	CouponCode   *string `db:"coupon_code"`
	ShippingMode string  `db:"shipping_mode"`
}

// State returns the applied coupon (if any) and the shipping mode.
func (r *CartRepo) State(cartID string) (*domain.Coupon, domain.ShippingMode, error) {
	var row cartRow
	if err := r.db.Get(&row, `SELECT coupon_code, shipping_mode FROM carts WHERE id=?`, cartID); err != nil {
		return nil, domain.ShippingStandard, err
	}
	mode := domain.ShippingMode(row.ShippingMode)
	if row.CouponCode == nil {
		return nil, mode, nil
	}
	var cp domain.Coupon
	if err := r.db.Get(&cp, `SELECT code,kind,value,COALESCE(description,'') AS description FROM coupons WHERE code=?`, *row.CouponCode); err != nil {
		if err == sql.ErrNoRows {
			return nil, mode, nil
		}
		return nil, mode, err
	}
	return &cp, mode, nil
}

// FindCoupon matches a code against the coupon catalog, case-insensitively.
func (r *CartRepo) FindCoupon(code string) (*domain.Coupon, error) {
	var cp domain.Coupon
	err := r.db.Get(&cp, `
	  SELECT code,kind,value,COALESCE(description,'') AS description
	  FROM coupons WHERE LOWER(code)=LOWER(?)
	`, code)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *CartRepo) ListCoupons() ([]domain.Coupon, error) {
	var out []domain.Coupon
	err := r.db.Select(&out, `SELECT code,kind,value,COALESCE(description,'') AS description FROM coupons ORDER BY code`)
	return out, err
}
