// Package postgres implements the order repository on pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/speedyy/marketplace/internal/domain"
	"github.com/speedyy/marketplace/internal/invoice"
)

// Repository implements domain.Repository using PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// Compile-time check that Repository implements domain.Repository.
var _ domain.Repository = (*Repository)(nil)

// NewRepository creates a new PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateOrder inserts a new order with its cart and invoice breakout
// stored as JSONB.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	cartJSON, err := json.Marshal(order.CartItems)
	if err != nil {
		return domain.Internal(err, "order.create", "failed to encode cart items")
	}
	breakoutJSON, err := json.Marshal(order.InvoiceBreakout)
	if err != nil {
		return domain.Internal(err, "order.create", "failed to encode invoice breakout")
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO orders (
			id, restaurant_id, customer_id, status, is_pod, coupon_code,
			cart_items, invoice_breakout,
			total_customer_payable, vendor_payout_amount,
			payment_transaction_id, payout_transaction_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		order.ID, order.RestaurantID, order.CustomerID, order.Status, order.IsPOD, order.CouponCode,
		cartJSON, breakoutJSON,
		order.TotalCustomerPayable, order.VendorPayoutAmount,
		order.PaymentTransactionID, order.PayoutTransactionID,
	)
	if err != nil {
		return domain.Internal(err, "order.create", "failed to insert order")
	}
	return nil
}

// GetOrder retrieves an order by ID.
func (r *Repository) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	var (
		order        domain.Order
		cartJSON     []byte
		breakoutJSON []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, restaurant_id, customer_id, status, is_pod, coupon_code,
		       cart_items, invoice_breakout,
		       total_customer_payable, vendor_payout_amount,
		       payment_transaction_id, payout_transaction_id,
		       created_at, updated_at
		FROM orders WHERE id = $1`, orderID,
	).Scan(
		&order.ID, &order.RestaurantID, &order.CustomerID, &order.Status, &order.IsPOD, &order.CouponCode,
		&cartJSON, &breakoutJSON,
		&order.TotalCustomerPayable, &order.VendorPayoutAmount,
		&order.PaymentTransactionID, &order.PayoutTransactionID,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get", "failed to query order")
	}

	if err := json.Unmarshal(cartJSON, &order.CartItems); err != nil {
		return nil, domain.Internal(err, "order.get", "failed to decode cart items")
	}
	order.InvoiceBreakout = &invoice.Breakout{}
	if err := json.Unmarshal(breakoutJSON, order.InvoiceBreakout); err != nil {
		return nil, domain.Internal(err, "order.get", "failed to decode invoice breakout")
	}
	return &order, nil
}

// UpdateOrder writes back the mutable order fields after a workflow step.
func (r *Repository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	breakoutJSON, err := json.Marshal(order.InvoiceBreakout)
	if err != nil {
		return domain.Internal(err, "order.update", "failed to encode invoice breakout")
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET
			status = $2,
			invoice_breakout = $3,
			total_customer_payable = $4,
			vendor_payout_amount = $5,
			payment_transaction_id = $6,
			payout_transaction_id = $7,
			updated_at = now()
		WHERE id = $1`,
		order.ID, order.Status, breakoutJSON,
		order.TotalCustomerPayable, order.VendorPayoutAmount,
		order.PaymentTransactionID, order.PayoutTransactionID,
	)
	if err != nil {
		return domain.Internal(err, "order.update", "failed to update order")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// GetRestaurant retrieves an active restaurant's charge configuration.
func (r *Repository) GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, active,
		       packing_charge_type, packing_charge_fixed_percent, packing_charge,
		       taxes_applicable_on_packing, packing_cgst, packing_sgst, packing_igst,
		       delivery_charge_paid_by, delivery_cgst, delivery_sgst, delivery_igst
		FROM restaurants WHERE id = $1 AND active`, restaurantID,
	).Scan(
		&rest.ID, &rest.Name, &rest.Active,
		&rest.PackingChargeType, &rest.PackingChargeFixedPercent, &rest.PackingCharge,
		&rest.TaxesApplicableOnPacking, &rest.PackingCGSTRate, &rest.PackingSGSTRate, &rest.PackingIGSTRate,
		&rest.DeliveryChargePaidBy, &rest.DeliveryCGSTRate, &rest.DeliverySGSTRate, &rest.DeliveryIGSTRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, domain.Internal(err, "restaurant.get", "failed to query restaurant")
	}
	return &rest, nil
}

// GetCouponByCode retrieves an active coupon by code.
func (r *Repository) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var c domain.Coupon
	err := r.pool.QueryRow(ctx, `
		SELECT id, code, level, type, min_order_value, max_discount,
		       discount_percentage, discount_amount, discount_share_vendor, active
		FROM coupons WHERE code = $1 AND active`, code,
	).Scan(
		&c.ID, &c.Code, &c.Level, &c.Type, &c.MinOrderValue, &c.MaxDiscount,
		&c.DiscountPercentage, &c.DiscountAmount, &c.DiscountShareVendor, &c.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, domain.Internal(err, "coupon.get", "failed to query coupon")
	}
	return &c, nil
}
