package payments

import (
	"context"
	"fmt"
)

// MockProvider is a mock payment provider for testing. Simulates
// successful payments and refunds without calling the gateway.
type MockProvider struct {
	// VerifyPaymentFunc allows customizing payment verification behavior
	VerifyPaymentFunc func(ctx context.Context, transactionID string) (*Payment, error)

	// CreateRefundFunc allows customizing refund behavior
	CreateRefundFunc func(ctx context.Context, transactionID string, amount float64) (*Refund, error)

	// Refunds stores issued refunds for assertions
	Refunds []*Refund

	// CallLog tracks method calls for test assertions
	CallLog []string
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a new mock payment provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// VerifyPayment returns a succeeded payment unless VerifyPaymentFunc is set.
func (m *MockProvider) VerifyPayment(ctx context.Context, transactionID string) (*Payment, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("VerifyPayment(%s)", transactionID))
	if m.VerifyPaymentFunc != nil {
		return m.VerifyPaymentFunc(ctx, transactionID)
	}
	return &Payment{
		TransactionID: transactionID,
		Currency:      "inr",
		Succeeded:     true,
	}, nil
}

// CreateRefund records and returns a refund unless CreateRefundFunc is set.
func (m *MockProvider) CreateRefund(ctx context.Context, transactionID string, amount float64) (*Refund, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("CreateRefund(%s, %.2f)", transactionID, amount))
	if m.CreateRefundFunc != nil {
		return m.CreateRefundFunc(ctx, transactionID, amount)
	}
	r := &Refund{
		RefundID:      "re_mock_" + transactionID,
		TransactionID: transactionID,
		Amount:        amount,
	}
	m.Refunds = append(m.Refunds, r)
	return r, nil
}
