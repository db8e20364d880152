package checkout

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// PaymentGateway abstracts the card processor so checkout and refunds are
// testable without network calls.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, receiptEmail string, metadata map[string]string) (id, clientSecret string, err error)
	Refund(ctx context.Context, paymentIntentID string, amountCents int64) error
}

// StripeGateway is the production PaymentGateway. The package-level
// stripe.Key is set once at startup.
type StripeGateway struct{}

func (StripeGateway) CreateIntent(ctx context.Context, amountCents int64, receiptEmail string, metadata map[string]string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(string(stripe.CurrencyUSD)),
		ReceiptEmail: stripe.String(receiptEmail),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}

func (StripeGateway) Refund(ctx context.Context, paymentIntentID string, amountCents int64) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(amountCents),
	}
	params.Context = ctx
	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("stripe: failed to create refund: %w", err)
	}
	return nil
}
