package unitofwork

import (
	"context"

	"launchforge-be/internal/repository/contract"
)

type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork

	// FeatureRepository returns the shared cached feature read path. Catalog
	// writes through any unit of work flush this same cache.
	FeatureRepository() contract.FeatureRepository
}
