package payments

import (
	"context"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"

	"github.com/speedyy/marketplace/internal/domain"
)

// StripeProvider implements Provider using the Stripe API. Amounts are
// converted between rupees and paise at the boundary.
type StripeProvider struct{}

var _ Provider = (*StripeProvider)(nil)

// NewStripeProvider configures the Stripe SDK with the secret key.
func NewStripeProvider(secretKey string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{}
}

// VerifyPayment retrieves a payment intent from Stripe.
func (s *StripeProvider) VerifyPayment(ctx context.Context, transactionID string) (*Payment, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(transactionID, params)
	if err != nil {
		return nil, domain.Internal(err, "payments.verify", "failed to retrieve payment")
	}
	return &Payment{
		TransactionID: pi.ID,
		Amount:        float64(pi.Amount) / 100,
		Currency:      string(pi.Currency),
		Succeeded:     pi.Status == stripe.PaymentIntentStatusSucceeded,
	}, nil
}

// CreateRefund issues a partial or full refund against the payment.
func (s *StripeProvider) CreateRefund(ctx context.Context, transactionID string, amount float64) (*Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(transactionID),
		Amount:        stripe.Int64(int64(math.Round(amount * 100))),
	}
	params.Context = ctx
	r, err := refund.New(params)
	if err != nil {
		return nil, domain.Internal(err, "payments.refund", "failed to create refund")
	}
	return &Refund{
		RefundID:      r.ID,
		TransactionID: transactionID,
		Amount:        float64(r.Amount) / 100,
	}, nil
}
