package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is a cart row joined with its product. Subtotal is filled by the
// service layer with decimal arithmetic.
type CartLine struct {
	ItemID    string          `db:"item_id"`
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Category  string          `db:"category"`
	Image     string          `db:"image"`
	Qty       int             `db:"qty"`
	Price     decimal.Decimal `db:"price"`
	Subtotal  decimal.Decimal `db:"-"`
}

// AddOne inserts a line with qty 1 or increments the existing line for
// (user, product). A single upsert against UNIQUE(user_id, product_id) so two
// racing adds can never create two rows. On conflict the existing row keeps
// its id and itemID is discarded.
func (r *CartRepo) AddOne(itemID, userID, productID string) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(id,user_id,product_id,qty,created_at)
		VALUES(?,?,?,1,CURRENT_TIMESTAMP)
		ON CONFLICT(user_id,product_id) DO UPDATE
		SET qty = cart_items.qty + 1, updated_at = CURRENT_TIMESTAMP
	`, itemID, userID, productID)
	return err
}

// DeleteOwned removes the item only when it belongs to userID. Returns the
// number of rows deleted so callers can distinguish missing/foreign items.
func (r *CartRepo) DeleteOwned(userID, itemID string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CartRepo) ListByUser(userID string) ([]CartLine, error) {
	rows := []CartLine{}
	err := r.db.Select(&rows, `
	  SELECT ci.id AS item_id, ci.product_id, p.name, p.category,
	         COALESCE(p.image,'') AS image, ci.qty, p.price
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.user_id = ?
	  ORDER BY ci.created_at, ci.id
	`, userID)
	return rows, err
}

type ProductQty struct {
	Name string `db:"name"`
	Qty  int    `db:"qty"`
}

// SumByProduct groups the user's cart rows by product name and sums
// quantities (chart feed for the analytics page).
func (r *CartRepo) SumByProduct(userID string) ([]ProductQty, error) {
	rows := []ProductQty{}
	err := r.db.Select(&rows, `
	  SELECT p.name, SUM(ci.qty) AS qty
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.user_id = ?
	  GROUP BY p.name
	  ORDER BY p.name
	`, userID)
	return rows, err
}
