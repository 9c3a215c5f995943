// FILE: pkg/generator/resolver.go
// Breadth-first dependency resolution over the feature catalog
package generator

import (
	"context"
	"fmt"

	"launchforge-be/internal/entity"
)

// Resolver computes the dependency closure of an order's feature selection.
// The "requires" graph lives in the catalog, not in memory, so resolution is
// a worklist algorithm: one batched catalog query per frontier wave.
type Resolver struct {
	catalog CatalogReader
}

func NewResolver(catalog CatalogReader) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve returns the deduplicated, dependency-closed feature set for the
// union of the buyer's selection and the template's bundled slugs.
//
// Slugs with no matching active catalog entry are dropped silently: an order
// referencing only unknown features resolves to an empty set, which is a valid
// base-template-only generation. A slug already visited is never re-queried or
// re-enqueued, so cyclic requires graphs terminate without special handling.
func (r *Resolver) Resolve(ctx context.Context, selectedSlugs []string, tier string, templateIncludedSlugs []string) (*ResolvedFeatureSet, error) {
	visited := make(map[string]bool)
	set := &ResolvedFeatureSet{
		Features:        []*entity.Feature{},
		AllFeatureSlugs: []string{},
	}

	// Initial frontier: selection + template bundle, collapsed to one entry
	// per slug regardless of origin.
	frontier := make([]string, 0, len(selectedSlugs)+len(templateIncludedSlugs))
	enqueue := func(slug string) {
		if slug == "" || visited[slug] {
			return
		}
		visited[slug] = true
		frontier = append(frontier, slug)
	}
	for _, slug := range selectedSlugs {
		enqueue(slug)
	}
	for _, slug := range templateIncludedSlugs {
		enqueue(slug)
	}

	for len(frontier) > 0 {
		wave := frontier
		frontier = nil

		features, err := r.catalog.FindFeaturesByTierAndSlugs(ctx, tier, wave)
		if err != nil {
			return nil, fmt.Errorf("resolve features: catalog query failed: %w", err)
		}

		for _, feature := range features {
			set.Features = append(set.Features, feature)
			set.AllFeatureSlugs = append(set.AllFeatureSlugs, feature.Slug)

			for _, required := range feature.Requires {
				enqueue(required)
			}
		}
	}

	return set, nil
}
