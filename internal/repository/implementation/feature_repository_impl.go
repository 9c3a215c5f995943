// FILE: internal/repository/implementation/feature_repository_impl.go
// Implementation of FeatureRepository
package implementation

import (
	"context"
	"errors"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/mapper"
	"launchforge-be/internal/model"
	"launchforge-be/internal/repository/contract"
	"launchforge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeatureMapper
}

func NewFeatureRepository(db *gorm.DB) contract.FeatureRepository {
	return &FeatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeatureMapper(),
	}
}

func (r *FeatureRepositoryImpl) Create(ctx context.Context, feature *entity.Feature) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeatureRepositoryImpl) Update(ctx context.Context, feature *entity.Feature) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeatureRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Feature{}, id).Error
}

func (r *FeatureRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error) {
	var m model.Feature
	query := applySpecifications(r.db.WithContext(ctx).Preload("Module"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeatureRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error) {
	var models []*model.Feature
	query := applySpecifications(r.db.WithContext(ctx).Preload("Module").Order("sort_order ASC"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FeatureRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*entity.Feature, error) {
	var m model.Feature
	if err := r.db.WithContext(ctx).Preload("Module").Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// FindActiveByTierAndSlugs is the catalog read path the dependency resolver
// batches its frontier queries through. Unknown and inactive slugs fall out
// of the result set, which is exactly the silent-drop contract the resolver
// relies on.
func (r *FeatureRepositoryImpl) FindActiveByTierAndSlugs(ctx context.Context, tier string, slugs []string) ([]*entity.Feature, error) {
	if len(slugs) == 0 {
		return []*entity.Feature{}, nil
	}
	return r.FindAll(ctx,
		specification.ActiveOnly{},
		specification.BySlugs{Slugs: slugs},
		specification.ForTier{Tier: tier},
	)
}
