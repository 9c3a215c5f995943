// FILE: internal/repository/implementation/order_repository_impl.go
// Implementations of OrderRepository and LicenseRepository
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

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &OrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrderMapper(),
	}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	order.Id = m.Id
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	order.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *OrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := applySpecifications(r.db.WithContext(ctx).Preload("Template").Preload("License"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var models []*model.Order
	query := applySpecifications(r.db.WithContext(ctx).Preload("Template").Preload("License").Order("created_at DESC"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.FindOne(ctx, specification.ByID{ID: id})
}

func (r *OrderRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

type LicenseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewLicenseRepository(db *gorm.DB) contract.LicenseRepository {
	return &LicenseRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrderMapper(),
	}
}

func (r *LicenseRepositoryImpl) Create(ctx context.Context, license *entity.License) error {
	m := r.mapper.LicenseToModel(license)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*license = *r.mapper.LicenseToEntity(m)
	return nil
}

func (r *LicenseRepositoryImpl) Update(ctx context.Context, license *entity.License) error {
	m := r.mapper.LicenseToModel(license)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*license = *r.mapper.LicenseToEntity(m)
	return nil
}

func (r *LicenseRepositoryImpl) FindByOrderID(ctx context.Context, orderId uuid.UUID) (*entity.License, error) {
	var m model.License
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.LicenseToEntity(&m), nil
}

func (r *LicenseRepositoryImpl) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.License{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
}
