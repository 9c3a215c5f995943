// FILE: internal/mapper/module_mapper.go
// Mapper for Module entity <-> model conversion
package mapper

import (
	"launchforge-be/internal/entity"
	"launchforge-be/internal/model"
)

type ModuleMapper struct{}

func NewModuleMapper() *ModuleMapper {
	return &ModuleMapper{}
}

func (m *ModuleMapper) ToEntity(model *model.Module) *entity.Module {
	if model == nil {
		return nil
	}
	return &entity.Module{
		Id:        model.Id,
		Slug:      model.Slug,
		Name:      model.Name,
		Category:  model.Category,
		SortOrder: model.SortOrder,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (m *ModuleMapper) ToModel(entity *entity.Module) *model.Module {
	if entity == nil {
		return nil
	}
	return &model.Module{
		Id:        entity.Id,
		Slug:      entity.Slug,
		Name:      entity.Name,
		Category:  entity.Category,
		SortOrder: entity.SortOrder,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}

func (m *ModuleMapper) ToEntities(models []*model.Module) []*entity.Module {
	entities := make([]*entity.Module, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
