package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/paulogil93/habitua-te-api/internal/config"
	"github.com/paulogil93/habitua-te-api/internal/database"
	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.New(database.Options{
		Driver: config.DriverSQLite,
		DSN:    ":memory:",
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db.DB()
}

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint { return &v }

func day(year int, month time.Month, d int) *datatypes.Date {
	date := datatypes.Date(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
	return &date
}

func seedUser(t *testing.T, repo UserRepository, n int) *models.User {
	t.Helper()
	user := &models.User{
		Name:      fmt.Sprintf("user%d", n),
		Email:     fmt.Sprintf("user%d@example.com", n),
		APIKey:    fmt.Sprintf("key-%d", n),
		StartDate: *day(2024, time.January, 2),
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedEvent(t *testing.T, repo EventRepository, title, eventType string, date *datatypes.Date) *models.Event {
	t.Helper()
	event := &models.Event{Title: title, Description: title + " description", EventType: eventType, Date: date}
	require.NoError(t, repo.Create(context.Background(), event))
	return event
}
