package repository

import (
	"context"
	"errors"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendeeFilter narrows a joined attendance listing. Nil fields match all.
type AttendeeFilter struct {
	EventID *uint
	WillGo  *string
}

// AttendRepository defines the interface for attendance data access
type AttendRepository interface {
	Create(ctx context.Context, req *models.AttendRequest) (*models.Attend, error)
	// Upsert updates attendance id with the fields present in req, or creates
	// it under that id when it does not exist. created reports which.
	Upsert(ctx context.Context, id uint, req *models.AttendRequest) (attend *models.Attend, created bool, err error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Attend, error)
	ListAttendees(ctx context.Context, filter AttendeeFilter) ([]models.AttendeeRow, error)
}

type attendRepository struct {
	store
}

var _ AttendRepository = (*attendRepository)(nil)

func NewAttendRepository(db *gorm.DB, log zerolog.Logger) AttendRepository {
	return &attendRepository{store: newStore(db, log, "attends")}
}

func (r *attendRepository) Create(ctx context.Context, req *models.AttendRequest) (*models.Attend, error) {
	if !req.Complete() {
		return nil, ErrInvalidInput
	}
	attend := &models.Attend{UserID: *req.UserID, EventID: *req.EventID, WillGo: *req.WillGo}
	if err := create(ctx, r.db, attend); err != nil {
		return nil, r.fail(err, "Failed to create attendance", 0)
	}
	return attend, nil
}

func (r *attendRepository) Upsert(ctx context.Context, id uint, req *models.AttendRequest) (*models.Attend, bool, error) {
	var (
		attend  models.Attend
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&attend, id).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if !req.Complete() {
				return ErrInvalidInput
			}
			attend = models.Attend{ID: id, UserID: *req.UserID, EventID: *req.EventID, WillGo: *req.WillGo}
			if err := tx.Omit(clause.Associations).Create(&attend).Error; err != nil {
				return err
			}
			created = true
			return syncSequence(tx, "attends")
		case err != nil:
			return err
		}

		if req.UserID != nil {
			attend.UserID = *req.UserID
		}
		if req.EventID != nil {
			attend.EventID = *req.EventID
		}
		if req.WillGo != nil {
			attend.WillGo = *req.WillGo
		}
		return tx.Omit(clause.Associations).Save(&attend).Error
	})
	if err != nil {
		return nil, false, r.fail(err, "Failed to upsert attendance", id)
	}
	return &attend, created, nil
}

func (r *attendRepository) Delete(ctx context.Context, id uint) error {
	if err := deleteByID[models.Attend](ctx, r.db, id); err != nil {
		return r.fail(err, "Failed to delete attendance", id)
	}
	return nil
}

func (r *attendRepository) List(ctx context.Context) ([]models.Attend, error) {
	attends, err := listAll[models.Attend](ctx, r.db)
	if err != nil {
		return nil, r.fail(err, "Failed to list attendance", 0)
	}
	return attends, nil
}

// ListAttendees joins attendance rows with the attending users
func (r *attendRepository) ListAttendees(ctx context.Context, filter AttendeeFilter) ([]models.AttendeeRow, error) {
	query := r.db.WithContext(ctx).
		Table("attends").
		Select("attends.id, attends.user_id, attends.event_id, users.name, users.profile_pic, attends.will_go").
		Joins("JOIN users ON users.id = attends.user_id")
	if filter.EventID != nil {
		query = query.Where("attends.event_id = ?", *filter.EventID)
	}
	if filter.WillGo != nil {
		query = query.Where("attends.will_go = ?", *filter.WillGo)
	}

	rows := make([]models.AttendeeRow, 0)
	if err := query.Order("attends.id").Scan(&rows).Error; err != nil {
		return nil, r.fail(err, "Failed to list attendees", 0)
	}
	return rows, nil
}
