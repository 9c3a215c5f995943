// FILE: internal/mapper/feature_mapper.go
// Mapper for Feature entity <-> model conversion (JSONB artifact columns)
package mapper

import (
	"encoding/json"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/model"

	"gorm.io/datatypes"
)

type FeatureMapper struct {
	moduleMapper *ModuleMapper
}

func NewFeatureMapper() *FeatureMapper {
	return &FeatureMapper{
		moduleMapper: NewModuleMapper(),
	}
}

// unmarshalJSON decodes a JSONB column into dst, treating null/empty as empty.
// Catalog rows are seeded by us, so a malformed column is a programming error;
// we fall back to the zero value rather than failing the read.
func unmarshalJSON(col datatypes.JSON, dst interface{}) {
	if len(col) == 0 {
		return
	}
	_ = json.Unmarshal(col, dst)
}

func marshalJSON(src interface{}) datatypes.JSON {
	b, err := json.Marshal(src)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(b)
}

func (m *FeatureMapper) ToEntity(mdl *model.Feature) *entity.Feature {
	if mdl == nil {
		return nil
	}
	e := &entity.Feature{
		Id:          mdl.Id,
		Slug:        mdl.Slug,
		Name:        mdl.Name,
		Description: mdl.Description,
		ModuleId:    mdl.ModuleId,
		Module:      m.moduleMapper.ToEntity(mdl.Module),
		IsActive:    mdl.IsActive,
		SortOrder:   mdl.SortOrder,
		CreatedAt:   mdl.CreatedAt,
		UpdatedAt:   mdl.UpdatedAt,
	}
	unmarshalJSON(mdl.Tiers, &e.Tiers)
	unmarshalJSON(mdl.Requires, &e.Requires)
	unmarshalJSON(mdl.FileMappings, &e.FileMappings)
	unmarshalJSON(mdl.SchemaMappings, &e.SchemaMappings)
	unmarshalJSON(mdl.EnvVars, &e.EnvVars)
	unmarshalJSON(mdl.PackageDependencies, &e.PackageDependencies)
	return e
}

func (m *FeatureMapper) ToModel(e *entity.Feature) *model.Feature {
	if e == nil {
		return nil
	}
	return &model.Feature{
		Id:                  e.Id,
		Slug:                e.Slug,
		Name:                e.Name,
		Description:         e.Description,
		ModuleId:            e.ModuleId,
		IsActive:            e.IsActive,
		SortOrder:           e.SortOrder,
		Tiers:               marshalJSON(e.Tiers),
		Requires:            marshalJSON(e.Requires),
		FileMappings:        marshalJSON(e.FileMappings),
		SchemaMappings:      marshalJSON(e.SchemaMappings),
		EnvVars:             marshalJSON(e.EnvVars),
		PackageDependencies: marshalJSON(e.PackageDependencies),
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func (m *FeatureMapper) ToEntities(models []*model.Feature) []*entity.Feature {
	entities := make([]*entity.Feature, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
