// FILE: internal/repository/contract/order_repository.go
// Repository interfaces for Order and License
package contract

import (
	"context"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	// FindByID loads the order with Template and License preloaded, which is
	// the shape the generation pipeline consumes.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Count(ctx context.Context) (int64, error)
}

type LicenseRepository interface {
	Create(ctx context.Context, license *entity.License) error
	Update(ctx context.Context, license *entity.License) error
	FindByOrderID(ctx context.Context, orderId uuid.UUID) (*entity.License, error)
	// IncrementDownloadCount bumps the counter atomically in the database.
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) error
}
