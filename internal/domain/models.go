package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"-"`
}

type Product struct {
	ID          string  `db:"id" json:"id"`
	Code        string  `db:"code" json:"code"`
	CategoryID  string  `db:"category_id" json:"categoryId"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	SizesJSON   string  `db:"sizes_json" json:"-"`
	ColorsJSON  string  `db:"colors_json" json:"-"`
	Stock       int     `db:"stock" json:"stock"`
	Sold        int     `db:"sold" json:"sold"`
	Discount    float64 `db:"discount" json:"discount"`
	Gender      string  `db:"gender" json:"gender"` // MALE | FEMALE | UNISEX
	ImagePath   string  `db:"image_path" json:"imagePath"`
	RatingAvg   float64 `db:"rating_avg" json:"ratingAvg"`
	RatingCount int     `db:"rating_count" json:"ratingCount"`
	Active      bool    `db:"active" json:"active"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"-"`
}

// CartItem lines are unique per (customer, product, color, size); adds for
// an existing tuple merge by incrementing qty.
type CartItem struct {
	CustomerID string  `db:"customer_id" json:"customerId"`
	ProductID  string  `db:"product_id" json:"productId"`
	Color      string  `db:"color" json:"color"`
	Size       string  `db:"size" json:"size"`
	Qty        int     `db:"qty" json:"qty"`
	Price      float64 `db:"price" json:"price"`
	UpdatedAt  string  `db:"updated_at" json:"-"`
}
