package service

import (
	"context"
	"encoding/json"
	"time"

	"retailpos/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const catalogCacheKey = "catalog:products:active"

// CatalogCache keeps the active product listing close at hand. Misses and
// backend errors behave the same: the caller reads the database.
type CatalogCache interface {
	GetActive(ctx context.Context, withCategory bool) ([]dto.ProductResponse, bool)
	SetActive(ctx context.Context, withCategory bool, products []dto.ProductResponse)
	Invalidate(ctx context.Context)
}

// NewCatalogCache returns a Redis-backed cache, or a no-op one when rdb is nil.
func NewCatalogCache(rdb *redis.Client, ttl time.Duration) CatalogCache {
	if rdb == nil {
		return noopCatalogCache{}
	}
	return &redisCatalogCache{rdb: rdb, ttl: ttl}
}

type redisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func catalogKey(withCategory bool) string {
	if withCategory {
		return catalogCacheKey + ":with_category"
	}
	return catalogCacheKey
}

func (c *redisCatalogCache) GetActive(ctx context.Context, withCategory bool) ([]dto.ProductResponse, bool) {
	cached, err := c.rdb.Get(ctx, catalogKey(withCategory)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}
	var products []dto.ProductResponse
	if err := json.Unmarshal(cached, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *redisCatalogCache) SetActive(ctx context.Context, withCategory bool, products []dto.ProductResponse) {
	b, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, catalogKey(withCategory), b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("catalog cache write failed")
	}
}

func (c *redisCatalogCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, catalogKey(true), catalogKey(false)).Err(); err != nil {
		log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

type noopCatalogCache struct{}

func (noopCatalogCache) GetActive(context.Context, bool) ([]dto.ProductResponse, bool) {
	return nil, false
}
func (noopCatalogCache) SetActive(context.Context, bool, []dto.ProductResponse) {}
func (noopCatalogCache) Invalidate(context.Context) {}
