// FILE: internal/mapper/template_mapper.go
// Mapper for Template entity <-> model conversion
package mapper

import (
	"launchforge-be/internal/entity"
	"launchforge-be/internal/model"
)

type TemplateMapper struct{}

func NewTemplateMapper() *TemplateMapper {
	return &TemplateMapper{}
}

func (m *TemplateMapper) ToEntity(mdl *model.Template) *entity.Template {
	if mdl == nil {
		return nil
	}
	e := &entity.Template{
		Id:          mdl.Id,
		Slug:        mdl.Slug,
		Name:        mdl.Name,
		Description: mdl.Description,
		IsActive:    mdl.IsActive,
		CreatedAt:   mdl.CreatedAt,
		UpdatedAt:   mdl.UpdatedAt,
	}
	unmarshalJSON(mdl.IncludedFeatureSlugs, &e.IncludedFeatureSlugs)
	return e
}

func (m *TemplateMapper) ToModel(e *entity.Template) *model.Template {
	if e == nil {
		return nil
	}
	return &model.Template{
		Id:                   e.Id,
		Slug:                 e.Slug,
		Name:                 e.Name,
		Description:          e.Description,
		IsActive:             e.IsActive,
		IncludedFeatureSlugs: marshalJSON(e.IncludedFeatureSlugs),
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func (m *TemplateMapper) ToEntities(models []*model.Template) []*entity.Template {
	entities := make([]*entity.Template, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
