package repository

import (
	"context"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByAPIKey(ctx context.Context, key string) (*models.User, error)
	Update(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	store
}

var _ UserRepository = (*userRepository)(nil)

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, log zerolog.Logger) UserRepository {
	return &userRepository{store: newStore(db, log, "users")}
}

// Create inserts the user and fills in its id
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := create(ctx, r.db, user); err != nil {
		return r.fail(err, "Failed to create user", 0)
	}
	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := getByID[models.User](ctx, r.db, id)
	if err != nil {
		return nil, r.fail(err, "Failed to get user by ID", id)
	}
	return user, nil
}

// GetByEmail retrieves a user by their email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(map[string]interface{}{"email": email}).First(&user).Error
	if err != nil {
		return nil, r.fail(err, "Failed to get user by email", 0)
	}
	return &user, nil
}

// GetByAPIKey retrieves the user owning key
func (r *userRepository) GetByAPIKey(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(map[string]interface{}{"api_key": key}).First(&user).Error
	if err != nil {
		return nil, r.fail(err, "Failed to get user by api key", 0)
	}
	return &user, nil
}

// Update applies the non-nil fields of req to the user
func (r *userRepository) Update(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := update(ctx, r.db, id, func(u *models.User) {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.ProfilePic != nil {
			u.ProfilePic = req.ProfilePic
		}
	})
	if err != nil {
		return nil, r.fail(err, "Failed to update user", id)
	}
	return user, nil
}

// Delete removes the user and returns the removed row
func (r *userRepository) Delete(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return nil, r.fail(err, "Failed to delete user", id)
	}
	return &user, nil
}

// List returns every user ordered by id
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	users, err := listAll[models.User](ctx, r.db)
	if err != nil {
		return nil, r.fail(err, "Failed to list users", 0)
	}
	return users, nil
}
