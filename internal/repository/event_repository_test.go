package repository

import (
	"context"
	"testing"
	"time"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func titles(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

func TestEventListings(t *testing.T) {
	repo := NewEventRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	seedEvent(t, repo, "old news", models.EventTypeNews, day(2024, time.March, 1))
	seedEvent(t, repo, "fresh news", models.EventTypeNews, day(2024, time.May, 1))
	seedEvent(t, repo, "past party", models.EventTypeEvent, day(2024, time.April, 10))
	seedEvent(t, repo, "today party", models.EventTypeEvent, day(2024, time.June, 1))
	seedEvent(t, repo, "next party", models.EventTypeEvent, day(2024, time.June, 2))
	seedEvent(t, repo, "later party", models.EventTypeEvent, day(2024, time.July, 20))
	seedEvent(t, repo, "undated party", models.EventTypeEvent, nil)

	news, err := repo.ListByType(ctx, models.EventTypeNews, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh news", "old news"}, titles(news))

	today := time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC)
	upcoming, err := repo.ListUpcoming(ctx, models.EventTypeEvent, today)
	require.NoError(t, err)
	assert.Equal(t, []string{"next party", "later party"}, titles(upcoming))

	all, err := repo.ListByType(ctx, models.EventTypeEvent, true)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "later party", all[0].Title)

	everything, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, everything, 7)
}

func TestEventUpdateAndClear(t *testing.T) {
	repo := NewEventRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	at := datatypes.NewTime(20, 30, 0, 0)
	event := &models.Event{Title: "Gig", Description: "Live", EventType: models.EventTypeEvent, Date: day(2024, time.June, 2), Time: &at}
	require.NoError(t, repo.Create(ctx, event))

	got, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Time)
	assert.Equal(t, "20:30:00", got.Time.String())
	require.NotNil(t, got.Date)
	assert.Equal(t, "2024-06-02", time.Time(*got.Date).Format("2006-01-02"))

	updated, err := repo.Update(ctx, event.ID, &models.UpdateEventRequest{Title: strPtr("Gig II"), ClearDate: true})
	require.NoError(t, err)
	assert.Equal(t, "Gig II", updated.Title)
	assert.Equal(t, "Live", updated.Description)
	assert.Nil(t, updated.Date)
	assert.NotNil(t, updated.Time)

	require.NoError(t, repo.Delete(ctx, event.ID))
	_, err = repo.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, event.ID), ErrNotFound)
}
