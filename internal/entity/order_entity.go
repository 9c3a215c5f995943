// FILE: internal/entity/order_entity.go
// Domain entities for orders and licenses
package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type LicenseStatus string

const (
	LicenseStatusActive  LicenseStatus = "active"
	LicenseStatusExpired LicenseStatus = "expired"
	LicenseStatusRevoked LicenseStatus = "revoked"
)

// License carries the key and download accounting attached to a paid order.
type License struct {
	Id      uuid.UUID
	OrderId uuid.UUID
	Key     string // Customer-visible license key embedded in LICENSE.md
	// bcrypt hash of the download token. The plaintext token is returned
	// exactly once when the license is issued and travels inside the
	// signed download JWT afterwards.
	DownloadTokenHash string
	DownloadCount     int
	MaxDownloads      int // 0 = unlimited
	Status            LicenseStatus
	ExpiresAt         *time.Time // nil = no expiry
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Downloadable reports whether another archive download is allowed.
func (l *License) Downloadable(now time.Time) bool {
	if l.Status != LicenseStatusActive {
		return false
	}
	if l.ExpiresAt != nil && now.After(*l.ExpiresAt) {
		return false
	}
	if l.MaxDownloads > 0 && l.DownloadCount >= l.MaxDownloads {
		return false
	}
	return true
}

// Order is the unit of work for one generation. Read-only input to the core,
// never mutated by it.
type Order struct {
	Id          uuid.UUID
	OrderNumber string // Human-readable: LF-2026-000123
	Tier        string // Pricing tier slug: starter, growth, scale
	// Feature slugs explicitly picked by the buyer. Template-bundled slugs
	// are added by the resolver, not stored here.
	SelectedFeatureSlugs []string
	CustomerName         string
	CustomerEmail        string
	Total                float64
	Currency             string
	Status               OrderStatus
	TemplateId           *uuid.UUID
	Template             *Template // Preloaded when TemplateId is set
	License              *License  // Preloaded; nil until payment settles
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
