// internal/adapters/out/cache/catalog_cache_redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	proddom "atelier/internal/domain/product"
	vardom "atelier/internal/domain/variant"
)

// DefaultCatalogTTL bounds how stale a cached product or variant may get.
// Cart rendering and checkout read prices through these repositories, so the
// window is kept short.
const DefaultCatalogTTL = 60 * time.Second

// ProductCacheRedis is a read-through cache in front of product.Repository.
// Redis being down never fails a request: misses and cache errors fall
// through to the inner repository.
type ProductCacheRedis struct {
	Inner  proddom.Repository
	Client *redis.Client
	TTL    time.Duration
}

func NewProductCacheRedis(inner proddom.Repository, client *redis.Client, ttl time.Duration) *ProductCacheRedis {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &ProductCacheRedis{Inner: inner, Client: client, TTL: ttl}
}

func (c *ProductCacheRedis) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	key := "catalog:product:" + strings.TrimSpace(id)

	if c.Client != nil {
		raw, err := c.Client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var p proddom.Product
			if jErr := json.Unmarshal(raw, &p); jErr == nil {
				return p, nil
			}
			// corrupt entry; fall through and rewrite below
		case errors.Is(err, redis.Nil):
			// miss
		default:
			log.Printf("[catalog_cache] WARN: redis get failed key=%s err=%v", key, err)
		}
	}

	p, err := c.Inner.GetByID(ctx, id)
	if err != nil {
		return proddom.Product{}, err
	}
	c.store(ctx, key, p)
	return p, nil
}

// ListActive is not cached: listings change with merchandising and the
// result set has no single invalidation key.
func (c *ProductCacheRedis) ListActive(ctx context.Context, categoryID string) ([]proddom.Product, error) {
	return c.Inner.ListActive(ctx, categoryID)
}

func (c *ProductCacheRedis) store(ctx context.Context, key string, v any) {
	if c.Client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		log.Printf("[catalog_cache] WARN: redis set failed key=%s err=%v", key, err)
	}
}

// VariantCacheRedis is the same read-through decorator for variants.
type VariantCacheRedis struct {
	Inner  vardom.Repository
	Client *redis.Client
	TTL    time.Duration
}

func NewVariantCacheRedis(inner vardom.Repository, client *redis.Client, ttl time.Duration) *VariantCacheRedis {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &VariantCacheRedis{Inner: inner, Client: client, TTL: ttl}
}

func (c *VariantCacheRedis) GetByID(ctx context.Context, id string) (vardom.Variant, error) {
	key := "catalog:variant:" + strings.TrimSpace(id)

	if c.Client != nil {
		raw, err := c.Client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var v vardom.Variant
			if jErr := json.Unmarshal(raw, &v); jErr == nil {
				return v, nil
			}
		case errors.Is(err, redis.Nil):
			// miss
		default:
			log.Printf("[catalog_cache] WARN: redis get failed key=%s err=%v", key, err)
		}
	}

	v, err := c.Inner.GetByID(ctx, id)
	if err != nil {
		return vardom.Variant{}, err
	}
	c.storeVariant(ctx, key, v)
	return v, nil
}

// ListByProductID is served from Redis under the product's key so a whole
// size/color grid costs one round trip.
func (c *VariantCacheRedis) ListByProductID(ctx context.Context, productID string, availableOnly bool) ([]vardom.Variant, error) {
	// availableOnly variants are a filtered view of the same data; only the
	// unfiltered list is cached.
	if availableOnly || c.Client == nil {
		return c.Inner.ListByProductID(ctx, productID, availableOnly)
	}

	key := "catalog:variants:" + strings.TrimSpace(productID)

	raw, err := c.Client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var vs []vardom.Variant
		if jErr := json.Unmarshal(raw, &vs); jErr == nil {
			return vs, nil
		}
	case errors.Is(err, redis.Nil):
		// miss
	default:
		log.Printf("[catalog_cache] WARN: redis get failed key=%s err=%v", key, err)
	}

	vs, err := c.Inner.ListByProductID(ctx, productID, availableOnly)
	if err != nil {
		return nil, err
	}
	c.storeVariant(ctx, key, vs)
	return vs, nil
}

func (c *VariantCacheRedis) storeVariant(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		log.Printf("[catalog_cache] WARN: redis set failed key=%s err=%v", key, err)
	}
}
