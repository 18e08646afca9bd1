package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction_backend/internal/feature/catalog/domain"
)

func TestCategoryGorm_SeedAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx, []string{"Toys", "Books"}))
	// Seeding again must not duplicate or fail.
	require.NoError(t, repo.Seed(ctx, []string{"Books", "Fashion"}))

	categories, err := repo.List(ctx)

	require.NoError(t, err)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Books", "Fashion", "Toys"}, names)
}

func TestCategoryGorm_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	cat := seedCategory(t, db, "Collectibles")

	t.Run("found", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), cat.ID)
		require.NoError(t, err)
		assert.Equal(t, "Collectibles", found.Name)
	})

	t.Run("not found", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), cat.ID+100)
		assert.Nil(t, found)
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})
}

func TestCategoryGorm_SeedEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	assert.NoError(t, repo.Seed(context.Background(), nil))
}
