// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"auction_backend/internal/feature/catalog/domain/entity"
	"auction_backend/internal/feature/catalog/usecase"
)

const (
	defaultTTL       = 10 * time.Minute
	defaultNamespace = "categories"
)

// CategoryStore is the repository being decorated: reads plus seeding.
type CategoryStore interface {
	usecase.CategoryRepository
	Seed(ctx context.Context, names []string) error
}

// CachingCategoryRepository decorates a CategoryStore with Redis caching.
// Categories change only through Seed, which invalidates the namespace.
type CachingCategoryRepository struct {
	inner     CategoryStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CategoryRepository = (*CachingCategoryRepository)(nil)

// NewCachingCategoryRepository wraps inner. A nil rdb disables caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "categories".
func NewCachingCategoryRepository(rdb *redis.Client, ttl time.Duration, inner CategoryStore, namespace string) *CachingCategoryRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingCategoryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns all categories, from cache when possible.
func (c *CachingCategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	err := c.cached(ctx, c.listKey(), &out, func() (interface{}, error) {
		categories, err := c.inner.List(ctx)
		out = categories
		return categories, err
	})
	return out, err
}

// FindByID returns one category. Misses on unknown IDs are not cached.
func (c *CachingCategoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	var out *entity.Category
	err := c.cached(ctx, c.idKey(id), &out, func() (interface{}, error) {
		category, err := c.inner.FindByID(ctx, id)
		out = category
		return category, err
	})
	return out, err
}

// Seed seeds the inner repository and drops every cached entry.
func (c *CachingCategoryRepository) Seed(ctx context.Context, names []string) error {
	if err := c.inner.Seed(ctx, names); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		log.WithFields(log.Fields{"namespace": c.namespace, "error": err}).Warn("category cache invalidation failed")
	}
	return nil
}

// cached reads key into dst, or calls load and stores its result. Redis
// failures fall through to load.
func (c *CachingCategoryRepository) cached(ctx context.Context, key string, dst interface{}, load func() (interface{}, error)) error {
	if c.rdb == nil {
		_, err := load()
		return err
	}

	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil && len(b) > 0:
		if jsonErr := json.Unmarshal(b, dst); jsonErr == nil {
			return nil
		}
		// Corrupted entry.
		_ = c.rdb.Del(ctx, key).Err()
	case err != nil && !errors.Is(err, redis.Nil):
		log.WithFields(log.Fields{"key": key, "error": err}).Warn("category cache read failed")
	}

	v, err := load()
	if err != nil {
		return err
	}
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return nil
}

func (c *CachingCategoryRepository) listKey() string {
	return fmt.Sprintf("%s:all", c.namespace)
}

func (c *CachingCategoryRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingCategoryRepository) deleteByPattern(ctx context.Context, pattern string) error {
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
			return nil
		}
	}
}
