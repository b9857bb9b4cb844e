package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vufs_backend/internal/feature/marketplace/domain/entity"
	"vufs_backend/internal/feature/marketplace/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&ListingModel{}, &ListingLikeModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func seedListing(t *testing.T, repo *listingPostgres, mutate func(l *entity.Listing)) *entity.Listing {
	t.Helper()

	listing := &entity.Listing{
		SellerID:  1,
		ItemID:    10,
		Title:     "Vintage denim jacket",
		Brand:     "Levi's",
		Category:  "outerwear",
		Price:     4500,
		Currency:  "JPY",
		Condition: entity.ConditionGood,
		Status:    entity.StatusActive,
	}
	if mutate != nil {
		mutate(listing)
	}
	err := repo.Create(context.Background(), listing)
	require.NoError(t, err, "failed to create test listing")
	return listing
}

func TestListingPostgres_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewListingRepository(db)

	listing := seedListing(t, repo, nil)

	assert.NotZero(t, listing.ID, "ID is not set")
	assert.False(t, listing.CreatedAt.IsZero(), "CreatedAt is not set")
}

func TestListingPostgres_FindByID(t *testing.T) {
	t.Run("find listing successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)
		created := seedListing(t, repo, nil)

		found, err := repo.FindByID(context.Background(), created.ID)

		assert.NoError(t, err, "failed to find listing")
		assert.Equal(t, created.ID, found.ID, "ID does not match")
		assert.Equal(t, "Vintage denim jacket", found.Title, "title does not match")
		assert.Equal(t, int64(4500), found.Price, "price does not match")
	})

	t.Run("not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)

		found, err := repo.FindByID(context.Background(), 999)

		assert.ErrorIs(t, err, usecase.ErrListingNotFound, "should return ErrListingNotFound")
		assert.Nil(t, found, "listing should be nil")
	})
}

func TestListingPostgres_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewListingRepository(db)

	seedListing(t, repo, func(l *entity.Listing) {
		l.Title = "Denim jacket"
		l.Category = "outerwear"
		l.Price = 4500
	})
	seedListing(t, repo, func(l *entity.Listing) {
		l.Title = "White sneakers"
		l.Category = "shoes"
		l.Price = 8000
	})
	sold := seedListing(t, repo, func(l *entity.Listing) {
		l.Title = "Wool coat"
		l.Category = "outerwear"
		l.Price = 12000
	})
	require.NoError(t, repo.UpdateStatus(context.Background(), sold.ID, entity.StatusSold))

	t.Run("status filter excludes sold", func(t *testing.T) {
		got, err := repo.Search(context.Background(), usecase.SearchFilter{
			Status: entity.StatusActive, Limit: 10,
		})
		require.NoError(t, err)
		assert.Len(t, got, 2, "only active listings should match")
	})

	t.Run("category filter", func(t *testing.T) {
		got, err := repo.Search(context.Background(), usecase.SearchFilter{
			Status: entity.StatusActive, Category: "shoes", Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "White sneakers", got[0].Title)
	})

	t.Run("price range filter", func(t *testing.T) {
		got, err := repo.Search(context.Background(), usecase.SearchFilter{
			Status: entity.StatusActive, PriceMin: 5000, PriceMax: 10000, Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(8000), got[0].Price)
	})

	t.Run("limit and offset", func(t *testing.T) {
		got, err := repo.Search(context.Background(), usecase.SearchFilter{
			Status: entity.StatusActive, Limit: 1, Offset: 1,
		})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		got, err := repo.Search(context.Background(), usecase.SearchFilter{
			Status: entity.StatusActive, Category: "bags", Limit: 10,
		})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestListingPostgres_Update(t *testing.T) {
	t.Run("updates editable fields only", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)
		created := seedListing(t, repo, nil)

		created.Title = "Vintage denim jacket (hemmed)"
		created.Price = 3900
		err := repo.Update(context.Background(), created)
		require.NoError(t, err, "failed to update listing")

		found, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Vintage denim jacket (hemmed)", found.Title)
		assert.Equal(t, int64(3900), found.Price)
		assert.Equal(t, entity.StatusActive, found.Status, "status should be untouched")
	})

	t.Run("missing listing", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)

		err := repo.Update(context.Background(), &entity.Listing{ID: 999, Title: "x", Price: 1, Currency: "JPY"})
		assert.ErrorIs(t, err, usecase.ErrListingNotFound)
	})
}

func TestListingPostgres_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewListingRepository(db)
	created := seedListing(t, repo, nil)

	err := repo.UpdateStatus(context.Background(), created.ID, entity.StatusWithdrawn)
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusWithdrawn, found.Status)

	err = repo.UpdateStatus(context.Background(), 999, entity.StatusSold)
	assert.ErrorIs(t, err, usecase.ErrListingNotFound)
}

func TestLikePostgres_LikeUnlike(t *testing.T) {
	db := setupTestDB(t)
	listings := NewListingRepository(db)
	likes := NewLikeRepository(db)
	created := seedListing(t, listings, nil)
	ctx := context.Background()

	likeCount := func() int64 {
		t.Helper()
		found, err := listings.FindByID(ctx, created.ID)
		require.NoError(t, err)
		return found.LikeCount
	}

	// 最初のいいねでカウントが増える
	require.NoError(t, likes.Like(ctx, created.ID, 2))
	assert.Equal(t, int64(1), likeCount(), "like count should be 1")

	// 同じユーザーの重複いいねは無視される
	require.NoError(t, likes.Like(ctx, created.ID, 2))
	assert.Equal(t, int64(1), likeCount(), "duplicate like should not change count")

	// 別のユーザーのいいねは加算される
	require.NoError(t, likes.Like(ctx, created.ID, 3))
	assert.Equal(t, int64(2), likeCount(), "like count should be 2")

	// いいね解除でカウントが減る
	require.NoError(t, likes.Unlike(ctx, created.ID, 2))
	assert.Equal(t, int64(1), likeCount(), "like count should be 1 after unlike")

	// いいねしていないユーザーの解除は無視される
	require.NoError(t, likes.Unlike(ctx, created.ID, 99))
	assert.Equal(t, int64(1), likeCount(), "unlike by non-liker should not change count")
}
