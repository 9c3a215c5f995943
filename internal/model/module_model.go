// FILE: internal/model/module_model.go
// GORM model for the modules (feature grouping) table
package model

import (
	"time"

	"github.com/google/uuid"
)

// Module groups catalog features under a documentation category
type Module struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Category  string    `gorm:"type:varchar(50)"` // core, monetization, storage, authentication
	SortOrder int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Module) TableName() string {
	return "modules"
}
