package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

const metadataOfferID = "offer_id"

// StripeProcessor implements Processor on top of the Stripe API.
type StripeProcessor struct {
	api           *client.API
	webhookSecret string
}

// NewStripeProcessor builds a processor client. The client is constructed
// once at process start and passed to the services that need it.
func NewStripeProcessor(secretKey, webhookSecret string) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeProcessor{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

func (p *StripeProcessor) CreateIntent(ctx context.Context, amountMinor int64, currency string, offerID string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	params.AddMetadata(metadataOfferID, offerID)

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

func (p *StripeProcessor) ParseWebhook(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded, stripe.EventTypePaymentIntentPaymentFailed:
	default:
		return &Event{Type: EventIgnored}, nil
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment intent: %w", err)
	}

	out := &Event{
		OfferID:       intent.Metadata[metadataOfferID],
		TransactionID: intent.ID,
	}

	if event.Type == stripe.EventTypePaymentIntentSucceeded {
		out.Type = EventPaymentSucceeded
	} else {
		out.Type = EventPaymentFailed
	}

	return out, nil
}
