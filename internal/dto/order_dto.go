// FILE: internal/dto/order_dto.go
// DTOs for order intake and download delivery
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	Tier             string   `json:"tier" validate:"required,oneof=starter growth scale"`
	SelectedFeatures []string `json:"selected_features"`
	TemplateSlug     string   `json:"template_slug,omitempty"`
	CustomerName     string   `json:"customer_name" validate:"required"`
	CustomerEmail    string   `json:"customer_email" validate:"required,email"`
	Total            float64  `json:"total" validate:"gte=0"`
	Currency         string   `json:"currency,omitempty"`
}

type OrderResponse struct {
	Id               uuid.UUID `json:"id"`
	OrderNumber      string    `json:"order_number"`
	Tier             string    `json:"tier"`
	SelectedFeatures []string  `json:"selected_features"`
	TemplateSlug     string    `json:"template_slug,omitempty"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	Total            float64   `json:"total"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// DownloadLinkResponse carries the one-time issued download link. The token
// inside the URL is a signed JWT wrapping the license's download secret.
type DownloadLinkResponse struct {
	OrderNumber string    `json:"order_number"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	LicenseKey  string    `json:"license_key,omitempty"`
}
