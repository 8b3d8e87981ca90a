// Package payments abstracts the payment gateway used for order
// collection and refunds.
package payments

import (
	"context"
)

// Payment is a verified payment as reported by the gateway.
type Payment struct {
	TransactionID string
	Amount        float64
	Currency      string
	Succeeded     bool
}

// Refund is a refund issued through the gateway.
type Refund struct {
	RefundID      string
	TransactionID string
	Amount        float64
}

// Provider defines the payment gateway operations the order workflow
// needs. Implementations can use Stripe, Razorpay, etc.
type Provider interface {
	// VerifyPayment retrieves the payment identified by transactionID so
	// the caller can check it succeeded for the expected amount.
	VerifyPayment(ctx context.Context, transactionID string) (*Payment, error)

	// CreateRefund issues a refund of amount against the original payment.
	CreateRefund(ctx context.Context, transactionID string, amount float64) (*Refund, error)
}
