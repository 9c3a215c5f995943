// FILE: internal/repository/contract/feature_repository.go
// Repository interface for Feature (master catalog)
package contract

import (
	"context"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FeatureRepository interface {
	Create(ctx context.Context, feature *entity.Feature) error
	Update(ctx context.Context, feature *entity.Feature) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Feature, error)

	// FindActiveByTierAndSlugs returns the active catalog features matching
	// the given slugs that are offered on the tier, with owning modules
	// preloaded. Unknown or inactive slugs are simply absent from the result.
	FindActiveByTierAndSlugs(ctx context.Context, tier string, slugs []string) ([]*entity.Feature, error)
}
