package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/speedyy/marketplace/internal/invoice"
)

// Order-related domain errors.
var (
	ErrOrderNotFound        = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrRestaurantNotFound   = &Error{Code: ENOTFOUND, Message: "Restaurant not found"}
	ErrCouponNotFound       = &Error{Code: ENOTFOUND, Message: "Coupon not found"}
	ErrEmptyCart            = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrPaymentNotSucceeded  = &Error{Code: EPAYMENT, Message: "Payment has not succeeded"}
	ErrInvalidTransition    = &Error{Code: ECONFLICT, Message: "Order is not in a state that allows this action"}
	ErrAlreadyConfirmed     = &Error{Code: ECONFLICT, Message: "Payment already confirmed for this order"}
	ErrRefundAlreadySettled = &Error{Code: ECONFLICT, Message: "Refund already settled for this order"}
)

// OrderStatus is the order lifecycle state. Transitions are owned by the
// order workflow; the payable/payout amounts underneath every transition
// come from the invoice breakout.
type OrderStatus string

const (
	OrderStatusPlaced        OrderStatus = "placed"
	OrderStatusConfirmed     OrderStatus = "confirmed"
	OrderStatusAccepted      OrderStatus = "accepted"
	OrderStatusRejected      OrderStatus = "rejected"
	OrderStatusDispatched    OrderStatus = "dispatched"
	OrderStatusDelivered     OrderStatus = "delivered"
	OrderStatusCancelled     OrderStatus = "cancelled"
	OrderStatusRefundSettled OrderStatus = "refund_settled"
)

// Order is the persisted order record. CartItems, the POD flag and the
// coupon code are retained alongside the breakout so the invoice can be
// re-derived in full when a later input arrives (delivery cost at vendor
// acceptance).
type Order struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	CustomerID   uuid.UUID
	Status       OrderStatus
	IsPOD        bool
	CouponCode   string

	CartItems       []invoice.MenuItem
	InvoiceBreakout *invoice.Breakout

	TotalCustomerPayable float64
	VendorPayoutAmount   float64

	PaymentTransactionID string
	PayoutTransactionID  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlaceOrderParams carries the cart submitted for order placement.
type PlaceOrderParams struct {
	RestaurantID uuid.UUID
	CustomerID   uuid.UUID
	Items        []invoice.MenuItem
	IsPOD        bool
	CouponCode   string
}

// SettleRefundParams identifies who triggered a refund settlement and why.
type SettleRefundParams struct {
	SettledBy string
	Remarks   string
}

// OrderService is the order workflow around the invoice engine.
type OrderService interface {
	// PlaceOrder costs the cart through the invoice engine (applying the
	// coupon when one is named), persists the order with its breakout and
	// publishes order.placed.
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*Order, error)

	// GetOrder retrieves a single order.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)

	// ConfirmPayment verifies the payment against the breakout's customer
	// payable amount and moves the order to confirmed.
	ConfirmPayment(ctx context.Context, orderID uuid.UUID, transactionID string) (*Order, error)

	// AcceptOrder records vendor acceptance with the quoted raw delivery
	// cost; the breakout is re-derived with the delivery gross-up.
	AcceptOrder(ctx context.Context, orderID uuid.UUID, deliveryCost float64) (*Order, error)

	// RejectOrder records vendor rejection.
	RejectOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)

	// CancelOrder cancels a not-yet-delivered order.
	CancelOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)

	// SettleRefund derives the refund split from the breakout, issues the
	// refund through the payment provider and records the settlement
	// details on the breakout.
	SettleRefund(ctx context.Context, orderID uuid.UUID, params SettleRefundParams) (*Order, error)
}

// Repository is the persistence boundary the order workflow depends on.
type Repository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)
	UpdateOrder(ctx context.Context, order *Order) error

	GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*Restaurant, error)
	GetCouponByCode(ctx context.Context, code string) (*Coupon, error)
}
