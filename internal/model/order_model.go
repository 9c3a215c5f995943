// FILE: internal/model/order_model.go
// GORM models for orders and licenses
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Order is one purchase; the unit of work for generation
type Order struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber          string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	Tier                 string         `gorm:"type:varchar(50);not null"`
	SelectedFeatureSlugs datatypes.JSON `gorm:"type:jsonb"`
	CustomerName         string         `gorm:"type:varchar(255);not null"`
	CustomerEmail        string         `gorm:"type:varchar(255);index;not null"`
	Total                float64        `gorm:"type:decimal(10,2);default:0"`
	Currency             string         `gorm:"type:varchar(10);default:'USD'"`
	Status               string         `gorm:"type:varchar(20);default:'pending';index"`
	TemplateId           *uuid.UUID     `gorm:"type:uuid;index"`
	Template             *Template      `gorm:"foreignKey:TemplateId"`
	License              *License       `gorm:"foreignKey:OrderId"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

// License holds the key and download accounting for a paid order.
// The download token is stored as a bcrypt hash; the plaintext only ever
// appears inside the signed download JWT.
type License struct {
	Id                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId           uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	Key               string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	DownloadTokenHash string     `gorm:"type:varchar(100);not null"`
	DownloadCount     int        `gorm:"default:0"`
	MaxDownloads      int        `gorm:"default:0"` // 0 = unlimited
	Status            string     `gorm:"type:varchar(20);default:'active'"`
	ExpiresAt         *time.Time `gorm:""`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime"`
}

func (License) TableName() string {
	return "licenses"
}
