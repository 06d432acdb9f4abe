package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// store holds what every gorm-backed repository needs.
type store struct {
	db  *gorm.DB
	log zerolog.Logger
}

func newStore(db *gorm.DB, log zerolog.Logger, entity string) store {
	return store{
		db:  db,
		log: log.With().Str("repository", entity).Logger(),
	}
}

// fail maps err and logs it unless the row simply did not exist.
func (s store) fail(err error, msg string, id uint) error {
	mapped := mapError(err)
	if !errors.Is(mapped, ErrNotFound) && !errors.Is(mapped, ErrInvalidInput) {
		s.log.Error().Err(err).Uint("id", id).Msg(msg)
	}
	return mapped
}

func getByID[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func listAll[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	rows := make([]T, 0)
	if err := db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func create[T any](ctx context.Context, db *gorm.DB, row *T) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(row).Error
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint) error {
	var row T
	result := db.WithContext(ctx).Delete(&row, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// update loads the row, lets apply mutate it and saves it, all in one
// transaction.
func update[T any](ctx context.Context, db *gorm.DB, id uint, apply func(*T)) (*T, error) {
	var row T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		apply(&row)
		return tx.Omit(clause.Associations).Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// syncSequence moves a PostgreSQL serial sequence past rows inserted with
// an explicit id. Other dialects track this on their own.
func syncSequence(tx *gorm.DB, table string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	query := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))",
		table, table,
	)
	return tx.Exec(query).Error
}
