package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedyy/marketplace/internal/domain"
	"github.com/speedyy/marketplace/internal/events"
	"github.com/speedyy/marketplace/internal/invoice"
	"github.com/speedyy/marketplace/internal/payments"
)

// mockRepo is an in-memory repository for workflow tests.
type mockRepo struct {
	orders      map[uuid.UUID]*domain.Order
	restaurants map[uuid.UUID]*domain.Restaurant
	coupons     map[string]*domain.Coupon
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		orders:      make(map[uuid.UUID]*domain.Order),
		restaurants: make(map[uuid.UUID]*domain.Restaurant),
		coupons:     make(map[string]*domain.Coupon),
	}
}

func (m *mockRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockRepo) GetOrder(_ context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, ok := m.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (m *mockRepo) UpdateOrder(_ context.Context, order *domain.Order) error {
	if _, ok := m.orders[order.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockRepo) GetRestaurant(_ context.Context, restaurantID uuid.UUID) (*domain.Restaurant, error) {
	r, ok := m.restaurants[restaurantID]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return r, nil
}

func (m *mockRepo) GetCouponByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := m.coupons[code]
	if !ok {
		return nil, domain.ErrCouponNotFound
	}
	return c, nil
}

// capturePublisher records the subjects published during a test.
type capturePublisher struct {
	subjects []string
}

func (p *capturePublisher) PublishOrder(subject string, _ *domain.Order) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

var _ events.Publisher = (*capturePublisher)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// simpleCart is a single tax-inclusive item: food cost 100, no tax.
func simpleCart() []invoice.MenuItem {
	return []invoice.MenuItem{
		{ID: 1, Name: "Veg Biryani", Price: 100, Quantity: 1},
	}
}

func newTestService(t *testing.T) (*OrderService, *mockRepo, *payments.MockProvider, *capturePublisher, uuid.UUID) {
	t.Helper()
	repo := newMockRepo()
	restaurantID := uuid.New()
	repo.restaurants[restaurantID] = &domain.Restaurant{
		ID:     restaurantID,
		Name:   "Test Kitchen",
		Active: true,

		PackingChargeType:    invoice.PackingChargeNone,
		DeliveryChargePaidBy: invoice.DeliveryPaidByCustomer,
		DeliveryCGSTRate:     9,
		DeliverySGSTRate:     9,
	}
	provider := payments.NewMockProvider()
	publisher := &capturePublisher{}
	svc := NewOrderService(repo, provider, publisher, testLogger())
	return svc, repo, provider, publisher, restaurantID
}

func placeTestOrder(t *testing.T, svc *OrderService, restaurantID uuid.UUID, isPOD bool) *domain.Order {
	t.Helper()
	order, err := svc.PlaceOrder(context.Background(), domain.PlaceOrderParams{
		RestaurantID: restaurantID,
		CustomerID:   uuid.New(),
		Items:        simpleCart(),
		IsPOD:        isPOD,
	})
	require.NoError(t, err)
	return order
}

func TestPlaceOrder(t *testing.T) {
	svc, repo, _, publisher, restaurantID := newTestService(t)

	order := placeTestOrder(t, svc, restaurantID, false)

	assert.Equal(t, domain.OrderStatusPlaced, order.Status)
	assert.Equal(t, 100.0, order.TotalCustomerPayable)
	assert.Equal(t, 97.0, order.VendorPayoutAmount)
	require.NotNil(t, order.InvoiceBreakout)
	assert.Equal(t, invoice.BreakoutVersion, order.InvoiceBreakout.Description.Version)

	stored, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
	assert.Len(t, repo.orders, 1)
	assert.Equal(t, []string{events.SubjectOrderPlaced}, publisher.subjects)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, _, _, _, restaurantID := newTestService(t)

	_, err := svc.PlaceOrder(context.Background(), domain.PlaceOrderParams{
		RestaurantID: restaurantID,
		CustomerID:   uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestPlaceOrderUnknownRestaurant(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	_, err := svc.PlaceOrder(context.Background(), domain.PlaceOrderParams{
		RestaurantID: uuid.New(),
		CustomerID:   uuid.New(),
		Items:        simpleCart(),
	})
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}

func TestPlaceOrderWithCoupon(t *testing.T) {
	svc, repo, _, _, restaurantID := newTestService(t)
	repo.coupons["FLAT20"] = &domain.Coupon{
		ID: 7, Code: "FLAT20",
		Level: invoice.CouponLevelGlobal, Type: invoice.CouponTypeFlat,
		DiscountAmount: 20, Active: true,
	}

	order, err := svc.PlaceOrder(context.Background(), domain.PlaceOrderParams{
		RestaurantID: restaurantID,
		CustomerID:   uuid.New(),
		Items:        simpleCart(),
		CouponCode:   "FLAT20",
	})
	require.NoError(t, err)

	require.NotNil(t, order.InvoiceBreakout.CouponDetails)
	assert.Equal(t, 20.0, order.InvoiceBreakout.CouponDetails.DiscountAmountApplied)
	assert.Equal(t, 80.0, order.TotalCustomerPayable)
}

func TestConfirmPayment(t *testing.T) {
	svc, _, provider, publisher, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, false)

	provider.VerifyPaymentFunc = func(_ context.Context, transactionID string) (*payments.Payment, error) {
		return &payments.Payment{TransactionID: transactionID, Amount: 100, Succeeded: true}, nil
	}

	confirmed, err := svc.ConfirmPayment(context.Background(), order.ID, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, confirmed.Status)
	assert.Equal(t, "pi_123", confirmed.PaymentTransactionID)
	assert.Equal(t, "pi_123", confirmed.InvoiceBreakout.PaymentTransactionID)
	assert.Contains(t, publisher.subjects, events.SubjectOrderConfirmed)

	_, err = svc.ConfirmPayment(context.Background(), order.ID, "pi_123")
	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
}

func TestConfirmPaymentAmountMismatch(t *testing.T) {
	svc, _, provider, _, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, false)

	provider.VerifyPaymentFunc = func(_ context.Context, transactionID string) (*payments.Payment, error) {
		return &payments.Payment{TransactionID: transactionID, Amount: 99.5, Succeeded: true}, nil
	}

	_, err := svc.ConfirmPayment(context.Background(), order.ID, "pi_456")
	require.Error(t, err)
	assert.Equal(t, domain.EPAYMENT, domain.ErrorCode(err))
}

func TestConfirmPaymentNotSucceeded(t *testing.T) {
	svc, _, provider, _, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, false)

	provider.VerifyPaymentFunc = func(_ context.Context, transactionID string) (*payments.Payment, error) {
		return &payments.Payment{TransactionID: transactionID, Amount: 100, Succeeded: false}, nil
	}

	_, err := svc.ConfirmPayment(context.Background(), order.ID, "pi_789")
	assert.ErrorIs(t, err, domain.ErrPaymentNotSucceeded)
}

func TestConfirmPaymentPODSkipsGateway(t *testing.T) {
	svc, _, provider, _, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, true)

	confirmed, err := svc.ConfirmPayment(context.Background(), order.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, confirmed.Status)
	assert.Empty(t, provider.CallLog)
}

func TestAcceptOrder(t *testing.T) {
	svc, _, provider, publisher, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, false)

	provider.VerifyPaymentFunc = func(_ context.Context, transactionID string) (*payments.Payment, error) {
		return &payments.Payment{TransactionID: transactionID, Amount: 100, Succeeded: true}, nil
	}
	_, err := svc.ConfirmPayment(context.Background(), order.ID, "pi_123")
	require.NoError(t, err)

	// Raw 50 grossed up by 9% CGST + 9% SGST.
	accepted, err := svc.AcceptOrder(context.Background(), order.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAccepted, accepted.Status)
	assert.Equal(t, 59.0, accepted.InvoiceBreakout.DeliveryCharges)
	assert.Equal(t, 159.0, accepted.TotalCustomerPayable)
	assert.Equal(t, "pi_123", accepted.InvoiceBreakout.PaymentTransactionID)
	assert.Contains(t, publisher.subjects, events.SubjectOrderAccepted)

	// A retried acceptance replaces the raw cost instead of compounding.
	retried, err := svc.AcceptOrder(context.Background(), order.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 59.0, retried.InvoiceBreakout.DeliveryCharges)
	assert.Equal(t, 159.0, retried.TotalCustomerPayable)
}

func TestAcceptOrderBeforeConfirmation(t *testing.T) {
	svc, _, _, _, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, false)

	_, err := svc.AcceptOrder(context.Background(), order.ID, 50)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRejectOrder(t *testing.T) {
	svc, _, _, publisher, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, false)

	rejected, err := svc.RejectOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusRejected, rejected.Status)
	assert.Contains(t, publisher.subjects, events.SubjectOrderRejected)

	_, err = svc.RejectOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelOrder(t *testing.T) {
	svc, _, _, publisher, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, false)

	cancelled, err := svc.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	assert.Contains(t, publisher.subjects, events.SubjectOrderCancelled)

	_, err = svc.CancelOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSettleRefund(t *testing.T) {
	svc, _, provider, publisher, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, false)

	provider.VerifyPaymentFunc = func(_ context.Context, transactionID string) (*payments.Payment, error) {
		return &payments.Payment{TransactionID: transactionID, Amount: 100, Succeeded: true}, nil
	}
	_, err := svc.ConfirmPayment(context.Background(), order.ID, "pi_123")
	require.NoError(t, err)
	_, err = svc.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)

	settled, err := svc.SettleRefund(context.Background(), order.ID, domain.SettleRefundParams{
		SettledBy: "ops@speedyy.com",
		Remarks:   "restaurant closed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusRefundSettled, settled.Status)

	// Payable 100 less 3% refund transaction charges.
	details := settled.InvoiceBreakout.RefundSettlementDetails
	require.NotNil(t, details)
	assert.Equal(t, 97.0, details.CustomerAmount)
	assert.Equal(t, "ops@speedyy.com", details.SettledBy)
	assert.Equal(t, "restaurant closed", details.Remarks)

	require.Len(t, provider.Refunds, 1)
	assert.Equal(t, "pi_123", provider.Refunds[0].TransactionID)
	assert.Equal(t, 97.0, provider.Refunds[0].Amount)
	assert.Contains(t, publisher.subjects, events.SubjectOrderRefundSettled)

	_, err = svc.SettleRefund(context.Background(), order.ID, domain.SettleRefundParams{})
	assert.ErrorIs(t, err, domain.ErrRefundAlreadySettled)
}

func TestSettleRefundPODSkipsGateway(t *testing.T) {
	svc, _, provider, _, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, true)

	_, err := svc.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)

	settled, err := svc.SettleRefund(context.Background(), order.ID, domain.SettleRefundParams{SettledBy: "system"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusRefundSettled, settled.Status)
	assert.Empty(t, provider.Refunds)
}

func TestSettleRefundRequiresTerminalCancellation(t *testing.T) {
	svc, _, _, _, restaurantID := newTestService(t)
	order := placeTestOrder(t, svc, restaurantID, false)

	_, err := svc.SettleRefund(context.Background(), order.ID, domain.SettleRefundParams{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
