// Package service implements the order workflow on top of the invoice
// engine, the repository, the payment provider and the event publisher.
package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/speedyy/marketplace/internal/domain"
	"github.com/speedyy/marketplace/internal/events"
	"github.com/speedyy/marketplace/internal/invoice"
	"github.com/speedyy/marketplace/internal/payments"
)

// OrderService orchestrates the order lifecycle. Every state transition
// derives its amounts from the invoice breakout, never from request
// input.
type OrderService struct {
	repo      domain.Repository
	payments  payments.Provider
	publisher events.Publisher
	logger    *slog.Logger
}

var _ domain.OrderService = (*OrderService)(nil)

// NewOrderService creates the order workflow service.
func NewOrderService(repo domain.Repository, provider payments.Provider, publisher events.Publisher, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:      repo,
		payments:  provider,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder costs the cart, persists the order with its breakout and
// publishes order.placed.
func (s *OrderService) PlaceOrder(ctx context.Context, params domain.PlaceOrderParams) (*domain.Order, error) {
	if len(params.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	restaurant, err := s.repo.GetRestaurant(ctx, params.RestaurantID)
	if err != nil {
		return nil, err
	}

	inv := invoice.New(params.Items, restaurant.ChargeConfig(), params.IsPOD)
	if params.CouponCode != "" {
		coupon, err := s.repo.GetCouponByCode(ctx, params.CouponCode)
		if err != nil {
			return nil, err
		}
		inv.SetCoupon(coupon.Detail())
	}

	order := &domain.Order{
		ID:                   uuid.New(),
		RestaurantID:         params.RestaurantID,
		CustomerID:           params.CustomerID,
		Status:               domain.OrderStatusPlaced,
		IsPOD:                params.IsPOD,
		CouponCode:           params.CouponCode,
		CartItems:            params.Items,
		InvoiceBreakout:      inv.Breakout,
		TotalCustomerPayable: inv.Breakout.TotalCustomerPayable,
		VendorPayoutAmount:   inv.Breakout.VendorPayoutAmount,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		"order_id", order.ID,
		"restaurant_id", order.RestaurantID,
		"total_customer_payable", order.TotalCustomerPayable)
	s.publish(events.SubjectOrderPlaced, order)
	return order, nil
}

// GetOrder retrieves a single order.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

// ConfirmPayment verifies the payment covers the customer payable amount
// and moves the order to confirmed. Pay-on-delivery orders confirm
// without gateway verification.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID uuid.UUID, transactionID string) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusConfirmed {
		return nil, domain.ErrAlreadyConfirmed
	}
	if order.Status != domain.OrderStatusPlaced {
		return nil, domain.ErrInvalidTransition
	}

	if !order.IsPOD {
		payment, err := s.payments.VerifyPayment(ctx, transactionID)
		if err != nil {
			return nil, err
		}
		if !payment.Succeeded {
			return nil, domain.ErrPaymentNotSucceeded
		}
		if math.Abs(payment.Amount-order.TotalCustomerPayable) > 0.005 {
			return nil, &domain.Error{
				Code:    domain.EPAYMENT,
				Op:      "order.confirm_payment",
				Message: "Payment amount does not match the order total",
			}
		}
	}

	order.Status = domain.OrderStatusConfirmed
	order.PaymentTransactionID = transactionID
	order.InvoiceBreakout.PaymentTransactionID = transactionID
	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("payment confirmed", "order_id", order.ID, "transaction_id", transactionID)
	s.publish(events.SubjectOrderConfirmed, order)
	return order, nil
}

// AcceptOrder records vendor acceptance with the quoted raw delivery
// cost. The breakout is re-derived from the retained cart so the
// delivery gross-up lands exactly once no matter how often acceptance is
// retried.
func (s *OrderService) AcceptOrder(ctx context.Context, orderID uuid.UUID, deliveryCost float64) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusConfirmed && order.Status != domain.OrderStatusAccepted {
		return nil, domain.ErrInvalidTransition
	}

	inv, err := s.rebuildInvoice(ctx, order)
	if err != nil {
		return nil, err
	}
	inv.SetDeliveryCost(deliveryCost)

	order.Status = domain.OrderStatusAccepted
	s.replaceBreakout(order, inv.Breakout)
	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order accepted",
		"order_id", order.ID,
		"delivery_charges", order.InvoiceBreakout.DeliveryCharges,
		"total_customer_payable", order.TotalCustomerPayable)
	s.publish(events.SubjectOrderAccepted, order)
	return order, nil
}

// RejectOrder records vendor rejection.
func (s *OrderService) RejectOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPlaced && order.Status != domain.OrderStatusConfirmed {
		return nil, domain.ErrInvalidTransition
	}

	order.Status = domain.OrderStatusRejected
	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order rejected", "order_id", order.ID)
	s.publish(events.SubjectOrderRejected, order)
	return order, nil
}

// CancelOrder cancels a not-yet-delivered order.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case domain.OrderStatusDelivered, domain.OrderStatusCancelled,
		domain.OrderStatusRejected, domain.OrderStatusRefundSettled:
		return nil, domain.ErrInvalidTransition
	}

	order.Status = domain.OrderStatusCancelled
	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled", "order_id", order.ID)
	s.publish(events.SubjectOrderCancelled, order)
	return order, nil
}

// SettleRefund derives the refund split from the breakout, issues the
// customer refund through the gateway and records the settlement on the
// breakout. The customer gets the payable amount less the provisioned
// refund transaction charges.
func (s *OrderService) SettleRefund(ctx context.Context, orderID uuid.UUID, params domain.SettleRefundParams) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusRefundSettled {
		return nil, domain.ErrRefundAlreadySettled
	}
	if order.Status != domain.OrderStatusCancelled && order.Status != domain.OrderStatusRejected {
		return nil, domain.ErrInvalidTransition
	}

	b := order.InvoiceBreakout
	customerAmount := b.TotalCustomerPayable - b.TransactionRefundCharges
	if customerAmount < 0 {
		customerAmount = 0
	}

	if !order.IsPOD && order.PaymentTransactionID != "" && customerAmount > 0 {
		if _, err := s.payments.CreateRefund(ctx, order.PaymentTransactionID, customerAmount); err != nil {
			return nil, err
		}
	}

	b.RefundSettlementDetails = &invoice.RefundSettlement{
		SettledBy:             params.SettledBy,
		CustomerAmount:        customerAmount,
		VendorPayoutAmount:    0,
		DeliveryPartnerAmount: b.DeliveryCharges,
		Remarks:               params.Remarks,
	}
	order.Status = domain.OrderStatusRefundSettled
	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("refund settled",
		"order_id", order.ID,
		"customer_amount", customerAmount,
		"settled_by", params.SettledBy)
	s.publish(events.SubjectOrderRefundSettled, order)
	return order, nil
}

// rebuildInvoice reconstructs the stateful calculator from the order's
// retained inputs.
func (s *OrderService) rebuildInvoice(ctx context.Context, order *domain.Order) (*invoice.Invoice, error) {
	restaurant, err := s.repo.GetRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return nil, err
	}
	inv := invoice.New(order.CartItems, restaurant.ChargeConfig(), order.IsPOD)
	if order.CouponCode != "" {
		coupon, err := s.repo.GetCouponByCode(ctx, order.CouponCode)
		if err != nil {
			return nil, err
		}
		inv.SetCoupon(coupon.Detail())
	}
	return inv, nil
}

// replaceBreakout swaps in a freshly derived breakout, carrying over the
// lifecycle fields the calculator does not own.
func (s *OrderService) replaceBreakout(order *domain.Order, b *invoice.Breakout) {
	b.PaymentTransactionID = order.PaymentTransactionID
	b.PayoutTransactionID = order.PayoutTransactionID
	if order.InvoiceBreakout != nil {
		b.RefundSettlementDetails = order.InvoiceBreakout.RefundSettlementDetails
	}
	order.InvoiceBreakout = b
	order.TotalCustomerPayable = b.TotalCustomerPayable
	order.VendorPayoutAmount = b.VendorPayoutAmount
}

// publish fans the event out best-effort; a broker outage must not fail
// the workflow step.
func (s *OrderService) publish(subject string, order *domain.Order) {
	if err := s.publisher.PublishOrder(subject, order); err != nil {
		s.logger.Error("failed to publish order event", "subject", subject, "order_id", order.ID, "error", err)
	}
}
