package unitofwork

import (
	"context"

	"launchforge-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ModuleRepository() contract.ModuleRepository
	FeatureRepository() contract.FeatureRepository
	TemplateRepository() contract.TemplateRepository
	OrderRepository() contract.OrderRepository
	LicenseRepository() contract.LicenseRepository
}
