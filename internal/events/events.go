// Package events publishes order lifecycle events over NATS.
package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/speedyy/marketplace/internal/domain"
)

// Subjects for order lifecycle events.
const (
	SubjectOrderPlaced        = "order.placed"
	SubjectOrderConfirmed     = "order.confirmed"
	SubjectOrderAccepted      = "order.accepted"
	SubjectOrderRejected      = "order.rejected"
	SubjectOrderCancelled     = "order.cancelled"
	SubjectOrderRefundSettled = "order.refund_settled"
)

// OrderEvent is the payload published on every order lifecycle subject.
type OrderEvent struct {
	OrderID              uuid.UUID          `json:"order_id"`
	RestaurantID         uuid.UUID          `json:"restaurant_id"`
	CustomerID           uuid.UUID          `json:"customer_id"`
	Status               domain.OrderStatus `json:"status"`
	TotalCustomerPayable float64            `json:"total_customer_payable"`
	VendorPayoutAmount   float64            `json:"vendor_payout_amount"`
	OccurredAt           time.Time          `json:"occurred_at"`
}

// Publisher fans out order lifecycle events.
type Publisher interface {
	PublishOrder(subject string, order *domain.Order) error
}

// NATSPublisher publishes order events to a NATS server.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("marketplace"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: conn, logger: logger}, nil
}

// PublishOrder publishes the order's current state on subject.
func (p *NATSPublisher) PublishOrder(subject string, order *domain.Order) error {
	event := OrderEvent{
		OrderID:              order.ID,
		RestaurantID:         order.RestaurantID,
		CustomerID:           order.CustomerID,
		Status:               order.Status,
		TotalCustomerPayable: order.TotalCustomerPayable,
		VendorPayoutAmount:   order.VendorPayoutAmount,
		OccurredAt:           time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return err
	}
	p.logger.Debug("published order event", "subject", subject, "order_id", order.ID)
	return nil
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("failed to drain nats connection", "error", err)
	}
}

// NopPublisher discards events. Used in tests and when NATS is not
// configured.
type NopPublisher struct{}

var _ Publisher = (*NopPublisher)(nil)

func (NopPublisher) PublishOrder(string, *domain.Order) error { return nil }
