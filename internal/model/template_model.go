// FILE: internal/model/template_model.go
// GORM model for the templates (feature bundles) table
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Template is a fixed feature bundle selectable at checkout
type Template struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug                 string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name                 string         `gorm:"type:varchar(255);not null"`
	Description          string         `gorm:"type:text"`
	IsActive             bool           `gorm:"default:true"`
	IncludedFeatureSlugs datatypes.JSON `gorm:"type:jsonb"` // ["auth.basic", ...]
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
}

func (Template) TableName() string {
	return "templates"
}
