// FILE: internal/entity/module_entity.go
// Domain entity for catalog modules (organizational grouping of features)
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Module groups related features under a category tag.
// The category is only used for document grouping (README sections),
// it has no effect on resolution or merging.
type Module struct {
	Id        uuid.UUID
	Slug      string // Unique slug: auth, monetization, storage, ...
	Name      string // Display name: "Authentication"
	Category  string // Category tag: core, monetization, storage, authentication
	SortOrder int    // Display order in documents
	CreatedAt time.Time
	UpdatedAt time.Time
}
