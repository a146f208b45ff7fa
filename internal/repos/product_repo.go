package repos

import (
	"modaville/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, code, category_id, name, description, price, sizes_json, colors_json,
  stock, sold, discount, gender, image_path, rating_avg, rating_count, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) List(q, catID, gender string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}
	if gender != "" {
		where += ` AND gender = ?`
		args = append(args, gender)
	}

	query := `SELECT ` + productCols + ` FROM products WHERE ` + where + `
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, query, args...)
	return out, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,code,category_id,name,description,price,sizes_json,colors_json,stock,discount,gender,image_path,active)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, p.ID, p.Code, p.CategoryID, p.Name, p.Description, p.Price, p.SizesJSON, p.ColorsJSON, p.Stock, p.Discount, p.Gender, p.ImagePath, p.Active)
	return err
}

func (r *ProductRepo) Update(p *domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET category_id=?, name=?, description=?, price=?, sizes_json=?, colors_json=?,
	      stock=?, discount=?, gender=?, image_path=?, active=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.CategoryID, p.Name, p.Description, p.Price, p.SizesJSON, p.ColorsJSON,
		p.Stock, p.Discount, p.Gender, p.ImagePath, p.Active, p.ID)
	return err
}

// Delete soft-deactivates; historical order lines keep their snapshots.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`UPDATE products SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=?`, id)
	return err
}

// SetRating writes the recomputed review aggregate. Only the review
// service calls this; nothing else touches the rating columns.
func (r *ProductRepo) SetRating(id string, avg float64, count int) error {
	_, err := r.db.Exec(`UPDATE products SET rating_avg=?, rating_count=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, avg, count, id)
	return err
}
