// FILE: internal/model/feature_model.go
// GORM model for the features (master catalog) table
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Feature represents a feature in the master catalog. Artifact lists and the
// requires edges are stored as JSONB columns and unmarshalled by the mapper.
type Feature struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	ModuleId    uuid.UUID `gorm:"type:uuid;index;not null"`
	Module      *Module   `gorm:"foreignKey:ModuleId"`
	IsActive    bool      `gorm:"default:true;index"`
	SortOrder   int       `gorm:"default:0"`

	Tiers    datatypes.JSON `gorm:"type:jsonb"` // ["starter","growth"]; null/[] = all tiers
	Requires datatypes.JSON `gorm:"type:jsonb"` // ["auth.basic", ...]

	FileMappings        datatypes.JSON `gorm:"type:jsonb"`
	SchemaMappings      datatypes.JSON `gorm:"type:jsonb"`
	EnvVars             datatypes.JSON `gorm:"type:jsonb"`
	PackageDependencies datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Feature) TableName() string {
	return "features"
}
