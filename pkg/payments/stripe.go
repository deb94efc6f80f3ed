package payments

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v79/client"
)

// Provider wraps the Stripe API client used by the payment capture flow.
// Session initiation only records pending transactions; the client is
// constructed here so capture can reuse it.
type Provider struct {
	api    *client.API
	logger zerolog.Logger
}

// New constructs a Stripe provider from the configured secret key.
func New(secretKey string, logger zerolog.Logger) (*Provider, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}

	api := &client.API{}
	api.Init(secretKey, nil)

	return &Provider{
		api:    api,
		logger: logger.With().Str("component", "stripe").Logger(),
	}, nil
}

// Name identifies the provider in transaction metadata.
func (p *Provider) Name() string {
	return "stripe"
}
