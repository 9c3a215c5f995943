// FILE: internal/dto/catalog_dto.go
// DTOs for the catalog surface (modules, features, templates)
package dto

import (
	"launchforge-be/internal/entity"

	"github.com/google/uuid"
)

// --- Responses ---

type ModuleResponse struct {
	Id       uuid.UUID `json:"id"`
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type FeatureResponse struct {
	Id          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Module      string    `json:"module"`
	Category    string    `json:"category"`
	Requires    []string  `json:"requires"`
	Tiers       []string  `json:"tiers"`
	IsActive    bool      `json:"is_active"`
}

type TemplateResponse struct {
	Id               uuid.UUID `json:"id"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	IncludedFeatures []string  `json:"included_features"`
}

// --- Admin catalog CRUD requests ---

type CreateModuleRequest struct {
	Slug     string `json:"slug" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type CreateFeatureRequest struct {
	Slug                string                     `json:"slug" validate:"required"`
	Name                string                     `json:"name" validate:"required"`
	Description         string                     `json:"description,omitempty"`
	ModuleSlug          string                     `json:"module_slug" validate:"required"`
	IsActive            bool                       `json:"is_active"`
	Tiers               []string                   `json:"tiers,omitempty"`
	Requires            []string                   `json:"requires,omitempty"`
	FileMappings        []entity.FileMapping       `json:"file_mappings,omitempty"`
	SchemaMappings      []entity.SchemaMapping     `json:"schema_mappings,omitempty"`
	EnvVars             []entity.EnvVarSpec        `json:"env_vars,omitempty"`
	PackageDependencies []entity.PackageDependency `json:"package_dependencies,omitempty"`
}

type UpdateFeatureRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
	Tiers       *[]string `json:"tiers,omitempty"`
	Requires    *[]string `json:"requires,omitempty"`
}

type CreateTemplateRequest struct {
	Slug             string   `json:"slug" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	Description      string   `json:"description,omitempty"`
	IncludedFeatures []string `json:"included_features,omitempty"`
}
