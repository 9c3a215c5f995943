// FILE: internal/service/catalog_service.go
// Service for the public catalog surface and admin catalog management
package service

import (
	"context"
	"fmt"

	"launchforge-be/internal/dto"
	"launchforge-be/internal/entity"
	"launchforge-be/internal/repository/specification"
	"launchforge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type CatalogService interface {
	// Public
	ListModules(ctx context.Context) ([]*dto.ModuleResponse, error)
	ListFeatures(ctx context.Context) ([]*dto.FeatureResponse, error)
	ListTemplates(ctx context.Context) ([]*dto.TemplateResponse, error)

	// Admin
	CreateModule(ctx context.Context, req dto.CreateModuleRequest) (*dto.ModuleResponse, error)
	CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*dto.FeatureResponse, error)
	UpdateFeature(ctx context.Context, id uuid.UUID, req dto.UpdateFeatureRequest) (*dto.FeatureResponse, error)
	DeleteFeature(ctx context.Context, id uuid.UUID) error
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory) CatalogService {
	return &catalogService{
		uowFactory: uowFactory,
	}
}

func (s *catalogService) ListModules(ctx context.Context) ([]*dto.ModuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	modules, err := uow.ModuleRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		result = append(result, toModuleResponse(m))
	}
	return result, nil
}

func (s *catalogService) ListFeatures(ctx context.Context) ([]*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	features, err := uow.FeatureRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FeatureResponse, 0, len(features))
	for _, f := range features {
		result = append(result, toFeatureResponse(f))
	}
	return result, nil
}

func (s *catalogService) ListTemplates(ctx context.Context) ([]*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	templates, err := uow.TemplateRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		result = append(result, toTemplateResponse(t))
	}
	return result, nil
}

func (s *catalogService) CreateModule(ctx context.Context, req dto.CreateModuleRequest) (*dto.ModuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ModuleRepository().FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("module with slug '%s' already exists", req.Slug)
	}

	module := &entity.Module{
		Slug:     req.Slug,
		Name:     req.Name,
		Category: req.Category,
	}
	if err := uow.ModuleRepository().Create(ctx, module); err != nil {
		return nil, err
	}
	return toModuleResponse(module), nil
}

func (s *catalogService) CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.FeatureRepository().FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("feature with slug '%s' already exists", req.Slug)
	}

	module, err := uow.ModuleRepository().FindBySlug(ctx, req.ModuleSlug)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, fmt.Errorf("module '%s' not found", req.ModuleSlug)
	}

	feature := &entity.Feature{
		Slug:                req.Slug,
		Name:                req.Name,
		Description:         req.Description,
		ModuleId:            module.Id,
		Module:              module,
		IsActive:            req.IsActive,
		Tiers:               req.Tiers,
		Requires:            req.Requires,
		FileMappings:        req.FileMappings,
		SchemaMappings:      req.SchemaMappings,
		EnvVars:             req.EnvVars,
		PackageDependencies: req.PackageDependencies,
	}
	if err := uow.FeatureRepository().Create(ctx, feature); err != nil {
		return nil, err
	}
	feature.Module = module // Create round-trips through the model, keep the preload
	return toFeatureResponse(feature), nil
}

func (s *catalogService) UpdateFeature(ctx context.Context, id uuid.UUID, req dto.UpdateFeatureRequest) (*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, fmt.Errorf("feature not found")
	}

	if req.Name != nil {
		feature.Name = *req.Name
	}
	if req.Description != nil {
		feature.Description = *req.Description
	}
	if req.IsActive != nil {
		feature.IsActive = *req.IsActive
	}
	if req.Tiers != nil {
		feature.Tiers = *req.Tiers
	}
	if req.Requires != nil {
		feature.Requires = *req.Requires
	}

	if err := uow.FeatureRepository().Update(ctx, feature); err != nil {
		return nil, err
	}
	return toFeatureResponse(feature), nil
}

func (s *catalogService) DeleteFeature(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.FeatureRepository().Delete(ctx, id)
}

func (s *catalogService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.TemplateRepository().FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("template with slug '%s' already exists", req.Slug)
	}

	template := &entity.Template{
		Slug:                 req.Slug,
		Name:                 req.Name,
		Description:          req.Description,
		IsActive:             true,
		IncludedFeatureSlugs: req.IncludedFeatures,
	}
	if err := uow.TemplateRepository().Create(ctx, template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// --- DTO conversion helpers ---

func toModuleResponse(m *entity.Module) *dto.ModuleResponse {
	return &dto.ModuleResponse{
		Id:       m.Id,
		Slug:     m.Slug,
		Name:     m.Name,
		Category: m.Category,
	}
}

func toFeatureResponse(f *entity.Feature) *dto.FeatureResponse {
	moduleName := ""
	if f.Module != nil {
		moduleName = f.Module.Name
	}
	return &dto.FeatureResponse{
		Id:          f.Id,
		Slug:        f.Slug,
		Name:        f.Name,
		Description: f.Description,
		Module:      moduleName,
		Category:    f.Category(),
		Requires:    f.Requires,
		Tiers:       f.Tiers,
		IsActive:    f.IsActive,
	}
}

func toTemplateResponse(t *entity.Template) *dto.TemplateResponse {
	return &dto.TemplateResponse{
		Id:               t.Id,
		Slug:             t.Slug,
		Name:             t.Name,
		Description:      t.Description,
		IncludedFeatures: t.IncludedFeatureSlugs,
	}
}
