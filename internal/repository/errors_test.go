package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"wrapped record not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), ErrNotFound},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, ErrDuplicateKey},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, ErrDuplicateKey},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, ErrForeignKeyViolation},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, ErrDuplicateKey},
		{"mysql foreign key", &mysql.MySQLError{Number: 1452}, ErrForeignKeyViolation},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, ErrDuplicateKey},
		{"postgres foreign key", &pgconn.PgError{Code: "23503"}, ErrForeignKeyViolation},
		{"postgres other", &pgconn.PgError{Code: "42P01"}, nil},
		{"unknown", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			switch {
			case tt.err == nil:
				assert.NoError(t, got)
			case tt.want == nil:
				assert.Same(t, tt.err, got)
			default:
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}

func TestMapErrorKeepsDriverError(t *testing.T) {
	driverErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}

	err := mapError(driverErr)

	var pgErr *pgconn.PgError
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "idx_users_email", pgErr.ConstraintName)
}
