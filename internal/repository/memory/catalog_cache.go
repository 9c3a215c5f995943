// FILE: internal/repository/memory/catalog_cache.go
// TTL cache decorator over the feature catalog read path.
// Catalog rows are immutable during generation, so a short TTL is enough to
// absorb the per-frontier-wave lookups of concurrent generations without a
// database round trip each.
package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/repository/contract"
	"launchforge-be/internal/repository/specification"

	gocache "github.com/patrickmn/go-cache"
	"github.com/google/uuid"
)

const (
	defaultTTL      = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
)

type CachedFeatureRepository struct {
	inner contract.FeatureRepository
	cache *gocache.Cache
}

func NewCachedFeatureRepository(inner contract.FeatureRepository) contract.FeatureRepository {
	return &CachedFeatureRepository{
		inner: inner,
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Writes go straight through and flush the cache, so admin catalog edits are
// visible within one request.
func (r *CachedFeatureRepository) Create(ctx context.Context, feature *entity.Feature) error {
	r.cache.Flush()
	return r.inner.Create(ctx, feature)
}

func (r *CachedFeatureRepository) Update(ctx context.Context, feature *entity.Feature) error {
	r.cache.Flush()
	return r.inner.Update(ctx, feature)
}

func (r *CachedFeatureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.cache.Flush()
	return r.inner.Delete(ctx, id)
}

func (r *CachedFeatureRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error) {
	return r.inner.FindOne(ctx, specs...)
}

func (r *CachedFeatureRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error) {
	return r.inner.FindAll(ctx, specs...)
}

func (r *CachedFeatureRepository) FindBySlug(ctx context.Context, slug string) (*entity.Feature, error) {
	return r.inner.FindBySlug(ctx, slug)
}

func (r *CachedFeatureRepository) FindActiveByTierAndSlugs(ctx context.Context, tier string, slugs []string) ([]*entity.Feature, error) {
	key := cacheKey(tier, slugs)
	if hit, found := r.cache.Get(key); found {
		return hit.([]*entity.Feature), nil
	}

	features, err := r.inner.FindActiveByTierAndSlugs(ctx, tier, slugs)
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, features, gocache.DefaultExpiration)
	return features, nil
}

func cacheKey(tier string, slugs []string) string {
	sorted := make([]string, len(slugs))
	copy(sorted, slugs)
	sort.Strings(sorted)
	return tier + "|" + strings.Join(sorted, ",")
}
