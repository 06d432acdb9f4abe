package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulogil93/habitua-te-api/internal/config"
	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Database struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

// Options controls how the connection is opened.
type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	SlowQuery    time.Duration
	Logger       zerolog.Logger
}

// FromConfig derives connection options from the service configuration.
func FromConfig(cfg *config.Config, log zerolog.Logger) Options {
	dsn := cfg.Database.DSN
	if cfg.Database.Driver == config.DriverSQLite && dsn == "" {
		dsn = cfg.Database.Path
	}
	return Options{
		Driver:       cfg.Database.Driver,
		DSN:          dsn,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		SlowQuery:    cfg.Database.SlowQuery,
		Logger:       log,
	}
}

// DB returns the underlying *gorm.DB instance
func (d *Database) DB() *gorm.DB {
	return d.db
}

// New opens the database for the configured driver. The schema is not
// touched; call Migrate for that.
func New(opts Options) (*Database, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 NewLogger(opts.Logger, opts.SlowQuery),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}

	if opts.Driver == config.DriverSQLite {
		// SQLite works best with a single connection, and an in-memory
		// database only exists on the connection that created it.
		sqlDB.SetMaxOpenConns(1)

		// Enable foreign key constraints so cascades apply
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	} else {
		if opts.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		}
		if opts.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		}
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return &Database{db: db, sqlDB: sqlDB}, nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case config.DriverSQLite:
		dsn, err := sqliteDSN(opts.DSN)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(opts.DSN), nil
	case config.DriverPostgres:
		return postgres.Open(opts.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// sqliteDSN creates the parent directory of file databases and turns on
// foreign keys for every connection the driver opens.
func sqliteDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("sqlite path is empty")
	}

	path := dsn
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimPrefix(path, "file:")
	if path != ":memory:" && path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn, nil
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on", nil
}

// Migrate creates or updates tables, indexes and foreign keys from the models
func (d *Database) Migrate(ctx context.Context) error {
	if err := d.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable
func (d *Database) Ping(ctx context.Context) error {
	return d.sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.sqlDB != nil {
		return d.sqlDB.Close()
	}
	return nil
}
