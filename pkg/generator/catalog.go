// FILE: pkg/generator/catalog.go
// Read-only catalog boundary consumed by the resolver
package generator

import (
	"context"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/repository/contract"
)

// CatalogReader is the only view the generation pipeline has of persisted
// catalog data. It must be safe for concurrent use; generations never write
// catalog rows. Tests substitute an in-memory fixture.
type CatalogReader interface {
	// FindFeaturesByTierAndSlugs returns active features matching the slugs
	// and offered on the tier. Unknown and inactive slugs are absent from the
	// result; the resolver turns that absence into its silent-drop behavior.
	FindFeaturesByTierAndSlugs(ctx context.Context, tier string, slugs []string) ([]*entity.Feature, error)
}

// repositoryCatalog adapts the persistence-layer FeatureRepository to the
// CatalogReader boundary.
type repositoryCatalog struct {
	features contract.FeatureRepository
}

func NewRepositoryCatalog(features contract.FeatureRepository) CatalogReader {
	return &repositoryCatalog{features: features}
}

func (c *repositoryCatalog) FindFeaturesByTierAndSlugs(ctx context.Context, tier string, slugs []string) ([]*entity.Feature, error) {
	return c.features.FindActiveByTierAndSlugs(ctx, tier, slugs)
}
