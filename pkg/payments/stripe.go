// Package payments talks to the external payment collaborator. The server
// only forwards an amount and currency and hands the resulting client
// secret back to the storefront; it makes no correctness guarantees about
// the payment itself.
package payments

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Currency is the only currency the storefront charges in.
const Currency = "usd"

// ErrNotConfigured is returned when no provider API key is set.
var ErrNotConfigured = errors.New("payments: provider key not configured")

// IntentCreator creates a payment intent and returns its client secret.
// Amounts are in minor units (cents).
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// MinorUnits converts a major-unit price to minor units, e.g. 19.99 → 1999.
// Rounded, not truncated, so float noise cannot shave a cent off.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// StripeClient implements IntentCreator against the Stripe API.
type StripeClient struct {
	api *client.API
}

// NewStripeClient builds a client for the given secret key.
func NewStripeClient(key string) (*StripeClient, error) {
	if key == "" {
		return nil, ErrNotConfigured
	}
	api := &client.API{}
	api.Init(key, nil)
	return &StripeClient{api: api}, nil
}

// CreateIntent creates a card PaymentIntent. Each call carries a fresh
// idempotency key so a storefront retry cannot double-create on our side.
func (c *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
