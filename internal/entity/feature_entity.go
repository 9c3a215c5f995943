// FILE: internal/entity/feature_entity.go
// Domain entity for catalog features and their artifact contributions
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FileMapping copies a source file from the base template tree to a
// destination path in the generated tree. Overlays always win over base files.
type FileMapping struct {
	Source      string `json:"source"`      // Path relative to the base template root
	Destination string `json:"destination"` // Path relative to the generated project root
}

// SchemaMapping contributes a named data-model fragment (a Prisma model or enum block).
type SchemaMapping struct {
	Model  string `json:"model"`  // Declared model name, e.g. "User"
	Source string `json:"source"` // Fragment file path relative to the base template root
}

// EnvVarSpec declares an environment variable the generated project needs.
type EnvVarSpec struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     string `json:"default,omitempty"`
}

// PackageDependency declares an npm package the generated project depends on.
type PackageDependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Dev     bool   `json:"dev"` // true -> devDependencies
}

// Feature is a purchasable capability in the master catalog. Immutable catalog
// data; the generator core never mutates it.
type Feature struct {
	Id          uuid.UUID
	Slug        string // Unique slug: auth.basic, payments.stripe, file-upload.s3, ...
	Name        string // Display name: "Basic Authentication"
	Description string
	ModuleId    uuid.UUID
	Module      *Module  // Preloaded owning module (category used for README grouping)
	IsActive    bool     // Inactive features are invisible to the resolver
	Tiers       []string // Tier slugs the feature is available on; empty = all tiers
	Requires    []string // Prerequisite feature slugs (dependency edges)
	SortOrder   int

	// Artifact contributions merged onto the base template
	FileMappings        []FileMapping
	SchemaMappings      []SchemaMapping
	EnvVars             []EnvVarSpec
	PackageDependencies []PackageDependency

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category returns the owning module's category, or "general" when the
// module was not preloaded. Used by the README generator for grouping.
func (f *Feature) Category() string {
	if f.Module == nil || f.Module.Category == "" {
		return "general"
	}
	return f.Module.Category
}

// AvailableOnTier reports whether the feature is offered on the given tier.
// An empty Tiers list means the feature is available on every tier.
func (f *Feature) AvailableOnTier(tier string) bool {
	if len(f.Tiers) == 0 {
		return true
	}
	for _, t := range f.Tiers {
		if t == tier {
			return true
		}
	}
	return false
}
