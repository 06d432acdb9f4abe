package repository

import (
	"context"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// APIKeyRepository defines the interface for administrator key data access
type APIKeyRepository interface {
	Create(ctx context.Context, key string) (*models.APIKey, error)
	Exists(ctx context.Context, key string) (bool, error)
	Revoke(ctx context.Context, key string) error
	List(ctx context.Context) ([]models.APIKey, error)
}

type apiKeyRepository struct {
	store
}

var _ APIKeyRepository = (*apiKeyRepository)(nil)

func NewAPIKeyRepository(db *gorm.DB, log zerolog.Logger) APIKeyRepository {
	return &apiKeyRepository{store: newStore(db, log, "api_keys")}
}

func (r *apiKeyRepository) Create(ctx context.Context, key string) (*models.APIKey, error) {
	row := &models.APIKey{Key: key}
	if err := create(ctx, r.db, row); err != nil {
		return nil, r.fail(err, "Failed to create api key", 0)
	}
	return row, nil
}

// Exists reports whether key is a stored administrator key. It is an
// indexed lookup on the unique key column.
func (r *apiKeyRepository) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.APIKey{}).
		Where(map[string]interface{}{"key": key}).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, r.fail(err, "Failed to look up api key", 0)
	}
	return count > 0, nil
}

func (r *apiKeyRepository) Revoke(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).
		Where(map[string]interface{}{"key": key}).
		Delete(&models.APIKey{})
	if result.Error != nil {
		return r.fail(result.Error, "Failed to revoke api key", 0)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *apiKeyRepository) List(ctx context.Context) ([]models.APIKey, error) {
	keys, err := listAll[models.APIKey](ctx, r.db)
	if err != nil {
		return nil, r.fail(err, "Failed to list api keys", 0)
	}
	return keys, nil
}
