// FILE: internal/repository/contract/template_repository.go
// Repository interface for Template (feature bundles)
package contract

import (
	"context"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *entity.Template) error
	Update(ctx context.Context, template *entity.Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Template, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Template, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Template, error)
}
