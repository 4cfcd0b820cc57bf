// Package payments wraps the card payment processor behind a small interface
// so the settlement workflow can be tested without network calls.
package payments

import "context"

// EventType classifies a verified webhook event.
type EventType string

const (
	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
	EventIgnored          EventType = "ignored"
)

// Intent is the result of creating a payment intent with the processor.
type Intent struct {
	ID           string
	ClientSecret string
}

// Event is a verified payment event correlated back to an offer via the
// metadata attached at intent-creation time.
type Event struct {
	Type          EventType
	OfferID       string
	TransactionID string
}

// Processor is the outbound payment interface. Amounts are in the
// processor's minor units (cents); conversion from the stored major-unit
// amount happens before this boundary.
type Processor interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, offerID string) (*Intent, error)
	// ParseWebhook verifies the payload signature and decodes the event.
	// Unsigned or tampered payloads must be rejected.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
