package models

// Category groups products
type Category struct {
	ID   uint    `json:"id" gorm:"primaryKey"`
	Name string  `json:"name" gorm:"size:50;not null;uniqueIndex"`
	URL  *string `json:"url"`
}

type CreateCategoryRequest struct {
	Name string `validate:"required,max=50"`
	URL  string `validate:"required"`
}

type UpdateCategoryRequest struct {
	Name *string `validate:"omitempty,max=50"`
	URL  *string
}

// Product is an item in the catalogue. Price and Proof are stored with two
// decimal places.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"not null"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	Category    *Category `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Proof       *float64  `json:"proof" gorm:"type:decimal(4,2)"`
	Country     *string   `json:"country" gorm:"size:25"`
	Available   bool      `json:"available" gorm:"not null"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Picture     *string   `json:"picture"`
}

// CreateProductRequest holds the parameters accepted when creating a product.
// Available defaults to true when not supplied.
type CreateProductRequest struct {
	CategoryID  uint     `validate:"required"`
	Name        string   `validate:"required,max=50"`
	Description string   `validate:"required"`
	Price       *float64 `validate:"required"`
	Proof       *float64
	Country     *string `validate:"omitempty,max=25"`
	Available   *bool
	Picture     *string
}

type UpdateProductRequest struct {
	CategoryID  *uint
	Name        *string `validate:"omitempty,max=50"`
	Description *string
	Price       *float64
	Proof       *float64
	ClearProof  bool
	Country     *string `validate:"omitempty,max=25"`
	Available   *bool
	Picture     *string
}
