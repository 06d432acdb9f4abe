package repository

import (
	"context"
	"errors"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavouriteRepository defines the interface for favourite data access
type FavouriteRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Favourite, error)
	// Upsert updates favourite id with the fields present in req, or creates
	// it under that id when it does not exist.
	Upsert(ctx context.Context, id uint, req *models.FavouriteRequest) (favourite *models.Favourite, created bool, err error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Favourite, error)
	ListByUser(ctx context.Context, userID uint) ([]models.FavouriteRow, error)
	// TopProducts returns the most favourited products, most popular first.
	// Products with equal counts are ordered by id.
	TopProducts(ctx context.Context, limit int) ([]models.ProductCount, error)
}

type favouriteCount struct {
	ProductID      uint
	FavouriteCount int64
}

type favouriteRepository struct {
	store
}

var _ FavouriteRepository = (*favouriteRepository)(nil)

func NewFavouriteRepository(db *gorm.DB, log zerolog.Logger) FavouriteRepository {
	return &favouriteRepository{store: newStore(db, log, "favourites")}
}

func (r *favouriteRepository) GetByID(ctx context.Context, id uint) (*models.Favourite, error) {
	favourite, err := getByID[models.Favourite](ctx, r.db, id)
	if err != nil {
		return nil, r.fail(err, "Failed to get favourite by ID", id)
	}
	return favourite, nil
}

func (r *favouriteRepository) Upsert(ctx context.Context, id uint, req *models.FavouriteRequest) (*models.Favourite, bool, error) {
	var (
		favourite models.Favourite
		created   bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&favourite, id).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if !req.Complete() {
				return ErrInvalidInput
			}
			favourite = models.Favourite{ID: id, UserID: *req.UserID, ProductID: *req.ProductID}
			if err := tx.Omit(clause.Associations).Create(&favourite).Error; err != nil {
				return err
			}
			created = true
			return syncSequence(tx, "favourites")
		case err != nil:
			return err
		}

		if req.UserID != nil {
			favourite.UserID = *req.UserID
		}
		if req.ProductID != nil {
			favourite.ProductID = *req.ProductID
		}
		return tx.Omit(clause.Associations).Save(&favourite).Error
	})
	if err != nil {
		return nil, false, r.fail(err, "Failed to upsert favourite", id)
	}
	return &favourite, created, nil
}

func (r *favouriteRepository) Delete(ctx context.Context, id uint) error {
	if err := deleteByID[models.Favourite](ctx, r.db, id); err != nil {
		return r.fail(err, "Failed to delete favourite", id)
	}
	return nil
}

func (r *favouriteRepository) List(ctx context.Context) ([]models.Favourite, error) {
	favourites, err := listAll[models.Favourite](ctx, r.db)
	if err != nil {
		return nil, r.fail(err, "Failed to list favourites", 0)
	}
	return favourites, nil
}

// ListByUser joins a user's favourites with the user and product rows
func (r *favouriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.FavouriteRow, error) {
	rows := make([]models.FavouriteRow, 0)
	err := r.db.WithContext(ctx).
		Table("favourites").
		Select(`favourites.id, favourites.user_id,
			users.name AS user_name, users.email AS user_email, users.profile_pic AS user_pic,
			favourites.product_id, products.name AS product_name, products.picture AS product_pic`).
		Joins("JOIN users ON users.id = favourites.user_id").
		Joins("JOIN products ON products.id = favourites.product_id").
		Where("favourites.user_id = ?", userID).
		Order("favourites.id").
		Scan(&rows).Error
	if err != nil {
		return nil, r.fail(err, "Failed to list favourites by user", userID)
	}
	return rows, nil
}

func (r *favouriteRepository) TopProducts(ctx context.Context, limit int) ([]models.ProductCount, error) {
	var counts []favouriteCount
	err := r.db.WithContext(ctx).
		Model(&models.Favourite{}).
		Select("product_id, COUNT(*) AS favourite_count").
		Group("product_id").
		Order("favourite_count DESC, product_id ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, r.fail(err, "Failed to count favourites", 0)
	}
	if len(counts) == 0 {
		return []models.ProductCount{}, nil
	}

	ids := make([]uint, len(counts))
	for i, c := range counts {
		ids[i] = c.ProductID
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, r.fail(err, "Failed to load top products", 0)
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	top := make([]models.ProductCount, 0, len(counts))
	for _, c := range counts {
		if p, ok := byID[c.ProductID]; ok {
			top = append(top, models.ProductCount{Product: p, Count: c.FavouriteCount})
		}
	}
	return top, nil
}
