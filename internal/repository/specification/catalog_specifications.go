package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type BySlugs struct {
	Slugs []string
}

func (s BySlugs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug IN ?", s.Slugs)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ForTier matches features offered on the given tier. A null or empty tiers
// column means the feature is available everywhere.
type ForTier struct {
	Tier string
}

func (s ForTier) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"tiers IS NULL OR tiers = 'null'::jsonb OR tiers = '[]'::jsonb OR tiers @> to_jsonb(?::text)",
		s.Tier,
	)
}

type ByModuleID struct {
	ModuleID uuid.UUID
}

func (s ByModuleID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("module_id = ?", s.ModuleID)
}
