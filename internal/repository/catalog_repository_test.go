package repository

import (
	"context"
	"testing"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryAndProductLifecycle(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db, zerolog.Nop())
	products := NewProductRepository(db, zerolog.Nop())
	ctx := context.Background()

	whiskey := &models.Category{Name: "Whiskey", URL: strPtr("https://example.com/whiskey")}
	require.NoError(t, categories.Create(ctx, whiskey))

	proof := 43.0
	scotch := &models.Product{
		Name:        "Scotch",
		Description: "Single malt",
		CategoryID:  whiskey.ID,
		Price:       12.50,
		Proof:       &proof,
		Available:   true,
	}
	require.NoError(t, products.Create(ctx, scotch))

	got, err := products.GetByID(ctx, scotch.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.50, got.Price)
	assert.Equal(t, 43.0, *got.Proof)
	assert.True(t, got.Available)

	listed, err := products.ListByCategory(ctx, whiskey.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Scotch", listed[0].Name)

	empty, err := products.ListByCategory(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)

	// Deleting the category cascades to its products
	require.NoError(t, categories.Delete(ctx, whiskey.ID))
	_, err = products.GetByID(ctx, scotch.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db, zerolog.Nop())
	products := NewProductRepository(db, zerolog.Nop())
	ctx := context.Background()

	category := &models.Category{Name: "Gin"}
	require.NoError(t, categories.Create(ctx, category))
	product := &models.Product{Name: "Dry", Description: "London dry", CategoryID: category.ID, Price: 9.99, Available: true, Country: strPtr("UK")}
	require.NoError(t, products.Create(ctx, product))

	available := false
	updated, err := products.Update(ctx, product.ID, &models.UpdateProductRequest{Available: &available})
	require.NoError(t, err)
	assert.False(t, updated.Available)
	assert.Equal(t, "Dry", updated.Name)
	assert.Equal(t, 9.99, updated.Price)
	assert.Equal(t, "UK", *updated.Country)

	_, err = products.Update(ctx, 999, &models.UpdateProductRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductConstraints(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db, zerolog.Nop())
	products := NewProductRepository(db, zerolog.Nop())
	ctx := context.Background()

	category := &models.Category{Name: "Rum"}
	require.NoError(t, categories.Create(ctx, category))
	require.NoError(t, products.Create(ctx, &models.Product{Name: "Dark", Description: "d", CategoryID: category.ID, Price: 1}))

	err := products.Create(ctx, &models.Product{Name: "Dark", Description: "again", CategoryID: category.ID, Price: 2})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	err = products.Create(ctx, &models.Product{Name: "Orphan", Description: "o", CategoryID: 999, Price: 2})
	assert.ErrorIs(t, err, ErrForeignKeyViolation)

	err = categories.Create(ctx, &models.Category{Name: "Rum"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCategoryUpdate(t *testing.T) {
	categories := NewCategoryRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	category := &models.Category{Name: "Vodka", URL: strPtr("old")}
	require.NoError(t, categories.Create(ctx, category))

	updated, err := categories.Update(ctx, category.ID, &models.UpdateCategoryRequest{URL: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "Vodka", updated.Name)
	assert.Equal(t, "new", *updated.URL)

	all, err := categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
