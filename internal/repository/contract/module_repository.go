// FILE: internal/repository/contract/module_repository.go
// Repository interface for Module (feature grouping)
package contract

import (
	"context"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ModuleRepository interface {
	Create(ctx context.Context, module *entity.Module) error
	Update(ctx context.Context, module *entity.Module) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Module, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Module, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Module, error)
}
