// FILE: internal/entity/template_entity.go
// Domain entity for project templates (fixed feature bundles)
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Template is a named bundle that unconditionally includes a fixed set of
// features, regardless of what the buyer selected.
type Template struct {
	Id          uuid.UUID
	Slug        string // Unique slug: saas-starter, marketplace, internal-tools
	Name        string // Display name: "SaaS Starter"
	Description string
	IsActive    bool
	// Feature slugs bundled with this template. They join the buyer's
	// selection to form the resolution frontier.
	IncludedFeatureSlugs []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
