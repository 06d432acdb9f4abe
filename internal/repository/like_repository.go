package repository

import (
	"context"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data access
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	GetByID(ctx context.Context, id uint) (*models.Like, error)
	// FindByPair returns the like of a user for an event, if any.
	FindByPair(ctx context.Context, userID, eventID uint) (*models.Like, error)
	Update(ctx context.Context, id uint, req *models.UpdateLikeRequest) (*models.Like, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Like, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Like, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.Like, error)
}

type likeRepository struct {
	store
}

var _ LikeRepository = (*likeRepository)(nil)

func NewLikeRepository(db *gorm.DB, log zerolog.Logger) LikeRepository {
	return &likeRepository{store: newStore(db, log, "likes")}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := create(ctx, r.db, like); err != nil {
		return r.fail(err, "Failed to create like", 0)
	}
	return nil
}

func (r *likeRepository) GetByID(ctx context.Context, id uint) (*models.Like, error) {
	like, err := getByID[models.Like](ctx, r.db, id)
	if err != nil {
		return nil, r.fail(err, "Failed to get like by ID", id)
	}
	return like, nil
}

func (r *likeRepository) FindByPair(ctx context.Context, userID, eventID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"user_id": userID, "event_id": eventID}).
		First(&like).Error
	if err != nil {
		return nil, r.fail(err, "Failed to find like", 0)
	}
	return &like, nil
}

func (r *likeRepository) Update(ctx context.Context, id uint, req *models.UpdateLikeRequest) (*models.Like, error) {
	like, err := update(ctx, r.db, id, func(l *models.Like) {
		if req.UserID != nil {
			l.UserID = *req.UserID
		}
		if req.EventID != nil {
			l.EventID = *req.EventID
		}
	})
	if err != nil {
		return nil, r.fail(err, "Failed to update like", id)
	}
	return like, nil
}

func (r *likeRepository) Delete(ctx context.Context, id uint) error {
	if err := deleteByID[models.Like](ctx, r.db, id); err != nil {
		return r.fail(err, "Failed to delete like", id)
	}
	return nil
}

func (r *likeRepository) List(ctx context.Context) ([]models.Like, error) {
	likes, err := listAll[models.Like](ctx, r.db)
	if err != nil {
		return nil, r.fail(err, "Failed to list likes", 0)
	}
	return likes, nil
}

func (r *likeRepository) ListByUser(ctx context.Context, userID uint) ([]models.Like, error) {
	return r.listWhere(ctx, "user_id", userID)
}

func (r *likeRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.Like, error) {
	return r.listWhere(ctx, "event_id", eventID)
}

func (r *likeRepository) listWhere(ctx context.Context, column string, id uint) ([]models.Like, error) {
	likes := make([]models.Like, 0)
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{column: id}).
		Order("id").
		Find(&likes).Error
	if err != nil {
		return nil, r.fail(err, "Failed to list likes by "+column, id)
	}
	return likes, nil
}
