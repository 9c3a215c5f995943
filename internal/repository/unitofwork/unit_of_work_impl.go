package unitofwork

import (
	"context"
	"fmt"

	"launchforge-be/internal/repository/contract"
	"launchforge-be/internal/repository/implementation"
	"launchforge-be/internal/repository/memory"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // The active transaction, nil outside Begin/Commit

	// Feature reads share one process-wide cache; repositories built inside
	// an open transaction bypass it so writes see their own effects.
	featureCache contract.FeatureRepository
}

func NewUnitOfWork(db *gorm.DB, featureCache contract.FeatureRepository) UnitOfWork {
	return &UnitOfWorkImpl{
		db:           db,
		featureCache: featureCache,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) ModuleRepository() contract.ModuleRepository {
	return implementation.NewModuleRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FeatureRepository() contract.FeatureRepository {
	if u.tx == nil && u.featureCache != nil {
		return u.featureCache
	}
	return implementation.NewFeatureRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TemplateRepository() contract.TemplateRepository {
	return implementation.NewTemplateRepository(u.getDB())
}

func (u *UnitOfWorkImpl) OrderRepository() contract.OrderRepository {
	return implementation.NewOrderRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LicenseRepository() contract.LicenseRepository {
	return implementation.NewLicenseRepository(u.getDB())
}

type RepositoryFactoryImpl struct {
	db           *gorm.DB
	featureCache contract.FeatureRepository
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db:           db,
		featureCache: memory.NewCachedFeatureRepository(implementation.NewFeatureRepository(db)),
	}
}

func (f *RepositoryFactoryImpl) FeatureRepository() contract.FeatureRepository {
	return f.featureCache
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	// UoW is short lived per request. The context is consumed when calling
	// Begin() or passed explicitly to repository methods.
	return NewUnitOfWork(f.db, f.featureCache)
}
