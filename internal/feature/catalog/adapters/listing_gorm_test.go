package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auctionentity "auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/catalog/domain"
	"auction_backend/internal/feature/catalog/domain/entity"
	engagemententity "auction_backend/internal/feature/engagement/domain/entity"
	"auction_backend/internal/shared/money"
)

// setupTestDB prepares an in-memory SQLite database with every table a listing touches.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.Category{},
		&entity.Listing{},
		&auctionentity.Bid{},
		&engagemententity.Comment{},
		&engagemententity.WatchlistEntry{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedCategory creates a category for testing.
func seedCategory(t *testing.T, db *gorm.DB, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name}
	require.NoError(t, db.Create(c).Error, "failed to seed category")
	return c
}

// seedListing creates a listing for testing.
func seedListing(t *testing.T, db *gorm.DB, ownerID, categoryID uint, state entity.ListingState, createdAt time.Time) *entity.Listing {
	t.Helper()
	price := decimal.RequireFromString("10.00")
	l := &entity.Listing{
		Title:         "Vintage camera",
		Description:   "Works fine",
		StartingPrice: price,
		CurrentPrice:  price,
		OwnerID:       ownerID,
		CategoryID:    categoryID,
		State:         state,
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(l).Error, "failed to seed listing")
	return l
}

func ids(listings []entity.Listing) []uint {
	out := make([]uint, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestNewListingRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewListingRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestListingGorm_CreateAndFindByID(t *testing.T) {
	t.Run("round trips prices and state", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)
		cat := seedCategory(t, db, "Electronics")

		l := &entity.Listing{
			Title:         "Phone",
			Description:   "Barely used",
			StartingPrice: decimal.RequireFromString("99.95"),
			CurrentPrice:  decimal.RequireFromString("99.95"),
			OwnerID:       3,
			CategoryID:    cat.ID,
			State:         entity.StateActive,
		}
		require.NoError(t, repo.Create(context.Background(), l))
		assert.NotZero(t, l.ID)

		found, err := repo.FindByID(context.Background(), l.ID)

		require.NoError(t, err)
		assert.Equal(t, "99.95", money.Format(found.StartingPrice))
		assert.Equal(t, "99.95", money.Format(found.CurrentPrice))
		assert.Equal(t, entity.StateActive, found.State)
		assert.Nil(t, found.WinnerID)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)

		found, err := repo.FindByID(context.Background(), 404)

		assert.Nil(t, found)
		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})
}

func TestListingGorm_ListActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewListingRepository(db)
	books := seedCategory(t, db, "Books")
	toys := seedCategory(t, db, "Toys")
	now := time.Now()

	older := seedListing(t, db, 1, books.ID, entity.StateActive, now.Add(-2*time.Hour))
	newer := seedListing(t, db, 1, toys.ID, entity.StateActive, now.Add(-1*time.Hour))
	seedListing(t, db, 1, books.ID, entity.StateDeactivated, now)
	seedListing(t, db, 1, books.ID, entity.StateClosed, now)

	t.Run("all categories newest first", func(t *testing.T) {
		got, err := repo.ListActive(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []uint{newer.ID, older.ID}, ids(got))
	})

	t.Run("single category", func(t *testing.T) {
		got, err := repo.ListActive(context.Background(), &books.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{older.ID}, ids(got))
	})
}

func TestListingGorm_ListByOwnerAndWonBy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewListingRepository(db)
	cat := seedCategory(t, db, "Home")
	now := time.Now()

	a := seedListing(t, db, 1, cat.ID, entity.StateActive, now.Add(-time.Hour))
	b := seedListing(t, db, 1, cat.ID, entity.StateDeactivated, now)
	seedListing(t, db, 2, cat.ID, entity.StateActive, now)

	winner := uint(7)
	closed := seedListing(t, db, 2, cat.ID, entity.StateClosed, now)
	require.NoError(t, db.Model(closed).Update("winner_id", winner).Error)

	owned, err := repo.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID, a.ID}, ids(owned))

	won, err := repo.ListWonBy(context.Background(), winner)
	require.NoError(t, err)
	assert.Equal(t, []uint{closed.ID}, ids(won))

	none, err := repo.ListWonBy(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListingGorm_DeleteUnbid(t *testing.T) {
	t.Run("deletes listing with comments and watchlist entries", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)
		cat := seedCategory(t, db, "Sports")
		l := seedListing(t, db, 1, cat.ID, entity.StateActive, time.Now())
		require.NoError(t, db.Create(&engagemententity.Comment{ListingID: l.ID, AuthorID: 2, Content: "Still available?"}).Error)
		require.NoError(t, db.Create(&engagemententity.WatchlistEntry{ListingID: l.ID, UserID: 2}).Error)

		err := repo.DeleteUnbid(context.Background(), l.ID)

		require.NoError(t, err)
		_, err = repo.FindByID(context.Background(), l.ID)
		assert.ErrorIs(t, err, domain.ErrListingNotFound)

		var comments, entries int64
		db.Model(&engagemententity.Comment{}).Count(&comments)
		db.Model(&engagemententity.WatchlistEntry{}).Count(&entries)
		assert.Zero(t, comments)
		assert.Zero(t, entries)
	})

	t.Run("refuses when bids exist", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)
		cat := seedCategory(t, db, "Sports")
		l := seedListing(t, db, 1, cat.ID, entity.StateActive, time.Now())
		require.NoError(t, db.Create(&auctionentity.Bid{ListingID: l.ID, BidderID: 2, Value: decimal.RequireFromString("11")}).Error)

		err := repo.DeleteUnbid(context.Background(), l.ID)

		assert.ErrorIs(t, err, domain.ErrListingHasBids)
		count, err := repo.CountBids(context.Background(), l.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		_, err = repo.FindByID(context.Background(), l.ID)
		assert.NoError(t, err)
	})

	t.Run("missing listing", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)

		err := repo.DeleteUnbid(context.Background(), 99)

		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})
}
