// Package invoice implements the order invoice calculation engine: it
// costs a cart of menu items (variants, addon groups with free-limit
// exemption, inclusive/exclusive GST) against a restaurant's packing,
// delivery and tax configuration and produces a fully reconciled
// financial breakout — per-item taxes, packing charges, coupon discount
// allocation, delivery gross-up, transaction charges, customer payable
// and vendor payout.
//
// The engine is pure, synchronous, in-memory arithmetic. It performs no
// input validation and never returns an error: malformed input is
// defaulted or skipped, matching the permissive contract of the upstream
// cart validation.
package invoice

// Invoice is a stateful calculator for one order. It retains its inputs
// and re-derives the entire breakout from them whenever an input changes,
// so every entry point is idempotent and the staged calls can arrive in
// any order and any number of times.
type Invoice struct {
	items        []MenuItem
	cfg          RestaurantConfig
	isPOD        bool
	coupon       *Coupon
	deliveryCost *float64

	// Breakout is the current fully reconciled result. Treat as read-only;
	// it is replaced wholesale on every recomputation.
	Breakout *Breakout
}

// New costs the cart and reconciles totals immediately.
func New(items []MenuItem, cfg RestaurantConfig, isPOD bool) *Invoice {
	inv := &Invoice{items: items, cfg: cfg, isPOD: isPOD}
	inv.recompute()
	return inv
}

// SetCoupon attaches a coupon and re-derives the breakout. For
// restaurant-level coupons this also shifts every item's taxable base to
// its discounted amount.
func (inv *Invoice) SetCoupon(c Coupon) {
	inv.coupon = &c
	inv.recompute()
}

// SetDeliveryCost records the raw (tax-exclusive) delivery cost and
// re-derives the breakout. Calling it again replaces the raw cost; the
// tax gross-up is never applied on top of an already grossed-up value.
func (inv *Invoice) SetDeliveryCost(rawCost float64) {
	inv.deliveryCost = &rawCost
	inv.recompute()
}

func (inv *Invoice) recompute() {
	inv.Breakout = Compute(inv.items, inv.cfg, inv.isPOD, inv.coupon, inv.deliveryCost)
}

// Compute derives a complete breakout from the cart in one pass. The
// pipeline order matters: item costing, then coupon allocation, then
// item-level tax (whose base depends on the allocated discount), then
// packing, delivery gross-up and the final reconciliation.
func Compute(items []MenuItem, cfg RestaurantConfig, isPOD bool, coupon *Coupon, deliveryCost *float64) *Breakout {
	b := &Breakout{
		IsPOD:                     isPOD,
		PackingChargeType:         cfg.PackingChargeType,
		PackingChargeFixedPercent: cfg.PackingChargeFixedPercent,
		PackingCharge:             cfg.PackingCharge,
		TaxesApplicableOnPacking:  cfg.TaxesApplicableOnPacking,
		PackingCGSTRate:           cfg.PackingCGSTRate,
		PackingSGSTRate:           cfg.PackingSGSTRate,
		PackingIGSTRate:           cfg.PackingIGSTRate,
		DeliveryChargePaidBy:      cfg.DeliveryChargePaidBy,
		DeliveryCGSTRate:          cfg.DeliveryCGSTRate,
		DeliverySGSTRate:          cfg.DeliverySGSTRate,
		DeliveryIGSTRate:          cfg.DeliveryIGSTRate,
		Description:               Description{Version: BreakoutVersion},
	}

	costMenuItems(b, items)
	if coupon != nil {
		applyCoupon(b, *coupon)
	}
	applyItemTaxes(b)
	applyPackingCharges(b)
	if deliveryCost != nil {
		applyDeliveryCharges(b, *deliveryCost)
	}
	reconcileTotals(b)
	return b
}

// applyDeliveryCharges grosses the raw delivery cost up by the delivery
// tax rates.
func applyDeliveryCharges(b *Breakout, rawCost float64) {
	b.DeliveryCharges = round2(rawCost +
		percentOf(rawCost, b.DeliveryCGSTRate) +
		percentOf(rawCost, b.DeliverySGSTRate) +
		percentOf(rawCost, b.DeliveryIGSTRate))
}

// reconcileTotals derives the customer payable and vendor payout amounts
// from everything computed so far. Food tax is deliberately excluded from
// the vendor payout: collected taxes are not vendor revenue.
func reconcileTotals(b *Breakout) {
	b.TotalCGST = b.TotalFoodCGST + b.PackingCGSTAmount
	b.TotalSGST = b.TotalFoodSGST + b.PackingSGSTAmount
	b.TotalIGST = b.TotalFoodIGST + b.PackingIGSTAmount
	b.TotalTax = b.TotalFoodTax + b.PackingChargeTax

	b.TransactionChargesRate, b.TransactionRefundChargesRate = transactionChargeRates()

	var discount, vendorShare float64
	if b.CouponDetails != nil {
		discount = b.CouponDetails.DiscountAmountApplied
		vendorShare = b.CouponDetails.DiscountShareAmountVendor
	}

	payable := b.TotalFoodCost + b.TotalTax + b.TotalPackingCharges - discount
	if b.DeliveryChargePaidBy == DeliveryPaidByCustomer {
		payable += b.DeliveryCharges
	}
	b.TotalCustomerPayable = round2(payable)

	if b.IsPOD {
		b.TransactionCharges = 0
	} else {
		b.TransactionCharges = percentOf(b.TotalCustomerPayable, b.TransactionChargesRate)
	}

	payout := b.TotalFoodCost + b.TotalPackingCharges - vendorShare - b.TransactionCharges
	if b.DeliveryChargePaidBy == DeliveryPaidByRestaurant {
		payout -= b.DeliveryCharges
	}
	b.VendorPayoutAmount = round2(payout)

	// Refund charges are provisioned even for pay-on-delivery orders, and
	// include delivery regardless of who pays it.
	b.TransactionRefundCharges = percentOf(
		b.TotalFoodCost+b.TotalTax+b.TotalPackingCharges-discount+b.DeliveryCharges,
		b.TransactionRefundChargesRate,
	)

	b.VendorCancellationCharges = round2(b.DeliveryCharges + b.TransactionCharges + b.TransactionRefundCharges)
}
