// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"vufs_backend/internal/feature/marketplace/domain/entity"
	"vufs_backend/internal/feature/marketplace/usecase"
)

// CachingListingRepository decorates a ListingRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Only search results are cached; any
// write invalidates the whole namespace.
type CachingListingRepository struct {
	inner     usecase.ListingRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ListingRepository = (*CachingListingRepository)(nil)

// NewCachingListingRepository decorates a ListingRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "listings".
func NewCachingListingRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ListingRepository, namespace string) *CachingListingRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "listings"
	}
	return &CachingListingRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a listing and invalidates cached search results.
func (c *CachingListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if err := c.inner.Create(ctx, listing); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID retrieves a single listing. Single lookups are not cached.
func (c *CachingListingRepository) FindByID(ctx context.Context, id uint) (*entity.Listing, error) {
	return c.inner.FindByID(ctx, id)
}

// Search retrieves listings, checking cache first then falling back to the database.
func (c *CachingListingRepository) Search(ctx context.Context, filter usecase.SearchFilter) ([]entity.Listing, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Search(ctx, filter)
	}

	key := c.cacheKey(filter)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Listing
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Update saves a listing and invalidates cached search results.
func (c *CachingListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	if err := c.inner.Update(ctx, listing); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// UpdateStatus updates a listing status and invalidates cached search results.
func (c *CachingListingRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := c.inner.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate removes all cached search results for this namespace.
func (c *CachingListingRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*") // Best effort: don't fail if cache deletion fails
}

// cacheKey generates a cache key for a specific search query.
func (c *CachingListingRepository) cacheKey(f usecase.SearchFilter) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%d:%d:%d:%d",
		c.namespace,
		safe(f.Query),
		safe(f.Category),
		safe(f.Condition),
		safe(f.Status),
		f.PriceMin,
		f.PriceMax,
		f.Limit,
		f.Offset,
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingListingRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	// Simple escaping of characters that are problematic for Redis keys
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
