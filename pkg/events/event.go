package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "GENERATION_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the internal bus and NATS.
const (
	TypeGenerationCompleted = "GENERATION_COMPLETED"
	TypeGenerationFailed    = "GENERATION_FAILED"
	TypeOrderCreated        = "ORDER_CREATED"
	TypeDownloadReady       = "DOWNLOAD_READY"
)

// NewDownloadReady records a signed download link being issued for an order.
// LicenseKey is only set on first issuance.
func NewDownloadReady(orderId, orderNumber, customerName, customerEmail, downloadURL, licenseKey string) Event {
	return BaseEvent{
		Type: TypeDownloadReady,
		Data: map[string]interface{}{
			"order_id":       orderId,
			"order_number":   orderNumber,
			"customer_name":  customerName,
			"customer_email": customerEmail,
			"download_url":   downloadURL,
			"license_key":    licenseKey,
		},
		OccurredAt: time.Now(),
	}
}

// NewGenerationCompleted records one successful archive stream.
func NewGenerationCompleted(orderId, orderNumber, customerEmail string, featureSlugs []string) Event {
	return BaseEvent{
		Type: TypeGenerationCompleted,
		Data: map[string]interface{}{
			"order_id":       orderId,
			"order_number":   orderNumber,
			"customer_email": customerEmail,
			"feature_slugs":  featureSlugs,
		},
		OccurredAt: time.Now(),
	}
}

// NewGenerationFailed records a fatal generation error.
func NewGenerationFailed(orderId, orderNumber, reason string) Event {
	return BaseEvent{
		Type: TypeGenerationFailed,
		Data: map[string]interface{}{
			"order_id":     orderId,
			"order_number": orderNumber,
			"reason":       reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewOrderCreated records a new order entering the system.
func NewOrderCreated(orderId, orderNumber, customerEmail string) Event {
	return BaseEvent{
		Type: TypeOrderCreated,
		Data: map[string]interface{}{
			"order_id":       orderId,
			"order_number":   orderNumber,
			"customer_email": customerEmail,
		},
		OccurredAt: time.Now(),
	}
}
