package services

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// CheckoutSession is the provider-neutral view of a hosted checkout session.
// TransactionID is the provider's payment reference, used as the idempotency
// key for payment records.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	TransactionID string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// CreateSessionParams captures the inputs for a new hosted checkout session.
type CreateSessionParams struct {
	AmountMinor   int64
	Currency      string
	ProductName   string
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

// SessionPaid is the provider status that permits recording a payment.
const SessionPaid = "paid"

// StripeCheckout talks to Stripe's checkout-session API.
type StripeCheckout struct {
	api *client.API
}

// NewStripeCheckout constructs a Stripe client from the secret key.
func NewStripeCheckout(secretKey string) *StripeCheckout {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeCheckout{api: api}
}

// CreateSession creates a hosted checkout session with a single line item and
// returns its redirect URL alongside the session fields.
func (s *StripeCheckout) CreateSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(params.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(params.CustomerEmail),
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(params.SuccessURL),
		CancelURL:     stripe.String(params.CancelURL),
	}
	for key, value := range params.Metadata {
		sessionParams.AddMetadata(key, value)
	}

	session, err := s.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return mapSession(session), nil
}

// RetrieveSession fetches the current state of a checkout session.
func (s *StripeCheckout) RetrieveSession(ctx context.Context, id string) (*CheckoutSession, error) {
	session, err := s.api.CheckoutSessions.Get(id, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	return mapSession(session), nil
}

func mapSession(session *stripe.CheckoutSession) *CheckoutSession {
	mapped := &CheckoutSession{
		ID:            session.ID,
		URL:           session.URL,
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Currency:      string(session.Currency),
		CustomerEmail: session.CustomerEmail,
		Metadata:      session.Metadata,
	}
	if session.PaymentIntent != nil {
		mapped.TransactionID = session.PaymentIntent.ID
	}
	if mapped.CustomerEmail == "" && session.CustomerDetails != nil {
		mapped.CustomerEmail = session.CustomerDetails.Email
	}
	return mapped
}
