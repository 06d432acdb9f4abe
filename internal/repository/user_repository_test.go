package repository

import (
	"context"
	"testing"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserRepo(t *testing.T) UserRepository {
	t.Helper()
	return NewUserRepository(newTestDB(t), zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Create / read
// ---------------------------------------------------------------------------

func TestUserCreateAndRead(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	user := seedUser(t, repo, 1)
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.APIKey, got.APIKey)
	assert.Nil(t, got.ProfilePic)

	byEmail, err := repo.GetByEmail(ctx, "user1@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byKey, err := repo.GetByAPIKey(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byKey.ID)
}

func TestUserLookupsMiss(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()
	seedUser(t, repo, 1)

	_, err := repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByAPIKey(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	repo := newTestUserRepo(t)
	seedUser(t, repo, 1)

	dup := &models.User{Name: "other", Email: "user1@example.com", APIKey: "different"}
	err := repo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

// ---------------------------------------------------------------------------
// Update / delete
// ---------------------------------------------------------------------------

func TestUserPartialUpdate(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo, 1)

	updated, err := repo.Update(ctx, user.ID, &models.UpdateUserRequest{ProfilePic: strPtr("me.png")})
	require.NoError(t, err)
	assert.Equal(t, "me.png", *updated.ProfilePic)
	assert.Equal(t, user.Name, updated.Name)
	assert.Equal(t, user.Email, updated.Email)
	assert.Equal(t, user.APIKey, updated.APIKey)

	_, err = repo.Update(ctx, 999, &models.UpdateUserRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDelete(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo, 1)

	deleted, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "key-1", deleted.APIKey)

	_, err = repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserListIsEmptySlice(t *testing.T) {
	repo := newTestUserRepo(t)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	seedUser(t, repo, 1)
	seedUser(t, repo, 2)
	users, err = repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user1", users[0].Name)
}
