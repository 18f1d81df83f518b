package domain

import "github.com/shopspring/decimal"

const (
	CategoryFruit     = "Fruit"
	CategoryVegetable = "Vegetable"
)

type Product struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Category  string          `db:"category"` // Fruit | Vegetable
	Image     string          `db:"image"`    // relative path under the media dir
	CreatedAt string          `db:"created_at"`
}

type CartItem struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	ProductID string `db:"product_id"`
	Qty       int    `db:"qty"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}
