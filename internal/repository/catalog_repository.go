package repository

import (
	"context"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Update(ctx context.Context, id uint, req *models.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Category, error)
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Update(ctx context.Context, id uint, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]models.Product, error)
}

type categoryRepository struct {
	store
}

type productRepository struct {
	store
}

var (
	_ CategoryRepository = (*categoryRepository)(nil)
	_ ProductRepository  = (*productRepository)(nil)
)

func NewCategoryRepository(db *gorm.DB, log zerolog.Logger) CategoryRepository {
	return &categoryRepository{store: newStore(db, log, "categories")}
}

func NewProductRepository(db *gorm.DB, log zerolog.Logger) ProductRepository {
	return &productRepository{store: newStore(db, log, "products")}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := create(ctx, r.db, category); err != nil {
		return r.fail(err, "Failed to create category", 0)
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := getByID[models.Category](ctx, r.db, id)
	if err != nil {
		return nil, r.fail(err, "Failed to get category by ID", id)
	}
	return category, nil
}

func (r *categoryRepository) Update(ctx context.Context, id uint, req *models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := update(ctx, r.db, id, func(c *models.Category) {
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.URL != nil {
			c.URL = req.URL
		}
	})
	if err != nil {
		return nil, r.fail(err, "Failed to update category", id)
	}
	return category, nil
}

// Delete removes the category. Its products go with it.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	if err := deleteByID[models.Category](ctx, r.db, id); err != nil {
		return r.fail(err, "Failed to delete category", id)
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories, err := listAll[models.Category](ctx, r.db)
	if err != nil {
		return nil, r.fail(err, "Failed to list categories", 0)
	}
	return categories, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := create(ctx, r.db, product); err != nil {
		return r.fail(err, "Failed to create product", 0)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := getByID[models.Product](ctx, r.db, id)
	if err != nil {
		return nil, r.fail(err, "Failed to get product by ID", id)
	}
	return product, nil
}

func (r *productRepository) Update(ctx context.Context, id uint, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := update(ctx, r.db, id, func(p *models.Product) {
		if req.CategoryID != nil {
			p.CategoryID = *req.CategoryID
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		switch {
		case req.ClearProof:
			p.Proof = nil
		case req.Proof != nil:
			p.Proof = req.Proof
		}
		if req.Country != nil {
			p.Country = req.Country
		}
		if req.Available != nil {
			p.Available = *req.Available
		}
		if req.Picture != nil {
			p.Picture = req.Picture
		}
	})
	if err != nil {
		return nil, r.fail(err, "Failed to update product", id)
	}
	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	if err := deleteByID[models.Product](ctx, r.db, id); err != nil {
		return r.fail(err, "Failed to delete product", id)
	}
	return nil
}

func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	products, err := listAll[models.Product](ctx, r.db)
	if err != nil {
		return nil, r.fail(err, "Failed to list products", 0)
	}
	return products, nil
}

// ListByCategory returns the products of one category. An unknown category
// yields an empty list; callers check existence separately.
func (r *productRepository) ListByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"category_id": categoryID}).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, r.fail(err, "Failed to list products by category", categoryID)
	}
	return products, nil
}
