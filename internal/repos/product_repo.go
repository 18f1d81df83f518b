package repos

import (
	"greenbasket/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// List returns the whole catalog when filter is empty, otherwise products
// whose name contains the filter, case-insensitively.
func (r *ProductRepo) List(filter string) ([]domain.Product, error) {
	out := []domain.Product{}
	if filter == "" {
		err := r.db.Select(&out, `
		  SELECT id, name, price, category, COALESCE(image,'') AS image, created_at
		  FROM products
		  ORDER BY name
		`)
		return out, err
	}
	err := r.db.Select(&out, `
	  SELECT id, name, price, category, COALESCE(image,'') AS image, created_at
	  FROM products
	  WHERE LOWER(name) LIKE '%' || LOWER(?) || '%'
	  ORDER BY name
	`, filter)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, price, category, COALESCE(image,'') AS image, created_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,name,price,category,image)
	  VALUES(?,?,?,?,?)
	`, p.ID, p.Name, p.Price, p.Category, p.Image)
	return err
}
