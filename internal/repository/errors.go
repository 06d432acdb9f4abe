package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a unique constraint is violated
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKeyViolation is returned when a referenced row does not exist
	ErrForeignKeyViolation = errors.New("foreign key violation")
	// ErrInvalidInput is returned when a request lacks the fields an operation needs
	ErrInvalidInput = errors.New("invalid input")
)

const (
	mysqlDuplicateEntry      = 1062
	mysqlNoReferencedRow     = 1452
	mysqlRowIsReferenced     = 1451
	postgresUniqueViolation  = "23505"
	postgresForeignViolation = "23503"
)

// mapError translates ORM and driver errors into the package sentinels.
// The driver error stays in the chain so callers can still inspect it.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
		}
		return err
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDuplicateEntry:
			return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		case mysqlNoReferencedRow, mysqlRowIsReferenced:
			return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
		}
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case postgresUniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		case postgresForeignViolation:
			return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
		}
	}

	return err
}
