package services

import (
	"database/sql"
	"errors"

	"greenbasket/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add puts one unit of the product into the user's cart. Repeat adds for the
// same product merge into the existing line (quantity + 1); the upsert is
// atomic so concurrent adds cannot produce duplicate lines.
func (s *CartService) Add(userID, productID string) error {
	if _, err := s.Prods.Get(productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}
	return s.Carts.AddOne(uuid.NewString(), userID, productID)
}

// Remove deletes the user's own cart item. Items that don't exist or belong
// to another user are indistinguishable: both are ErrItemNotFound.
func (s *CartService) Remove(userID, itemID string) error {
	n, err := s.Carts.DeleteOwned(userID, itemID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

type CartView struct {
	Lines []repos.CartLine
	Total decimal.Decimal
}

// View lists the user's cart with resolved products and a grand total.
// Subtotals and the total use decimal arithmetic rounded to 2 places.
func (s *CartService) View(userID string) (CartView, error) {
	lines, err := s.Carts.ListByUser(userID)
	if err != nil {
		return CartView{}, err
	}
	total := decimal.Zero
	for i := range lines {
		lines[i].Subtotal = lines[i].Price.Mul(decimal.NewFromInt(int64(lines[i].Qty)))
		total = total.Add(lines[i].Subtotal)
	}
	return CartView{Lines: lines, Total: total.Round(2)}, nil
}

// Analytics returns parallel slices of product names and summed quantities
// over the user's current cart rows, grouped by product name.
func (s *CartService) Analytics(userID string) ([]string, []int, error) {
	rows, err := s.Carts.SumByProduct(userID)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(rows))
	qtys := make([]int, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
		qtys = append(qtys, r.Qty)
	}
	return names, qtys, nil
}
