package invoice

// applyPackingCharges computes order-level or item-level packing charges
// and, when the restaurant taxes packing, the tax on the packing total.
// Runs on every totals recomputation; all derived fields are reset first.
func applyPackingCharges(b *Breakout) {
	b.OrderPackingCharge = 0
	b.TotalPackingCharges = 0

	switch b.PackingChargeType {
	case PackingChargeOrder:
		if b.PackingCharge != 0 {
			if b.PackingChargeFixedPercent == ChargeModePercent {
				b.OrderPackingCharge = percentOf(b.TotalFoodCost, b.PackingCharge)
			} else {
				b.OrderPackingCharge = b.PackingCharge
			}
			b.TotalPackingCharges = b.OrderPackingCharge
		}
	case PackingChargeItem:
		for i := range b.MenuItems {
			mc := &b.MenuItems[i]
			if b.PackingChargeFixedPercent == ChargeModePercent {
				// Base is the quantity-scaled line cost, so percent-mode
				// item packing grows with quantity through the base, not
				// through an explicit multiplier. Existing invoices were
				// issued this way; keep it.
				mc.ItemPackingCharges = percentOf(mc.TotalIndividualFoodItemCost, mc.PackingCharges)
			} else {
				mc.ItemPackingCharges = mc.PackingCharges * float64(mc.ItemQuantity)
			}
			b.TotalPackingCharges += mc.ItemPackingCharges
		}
	}

	b.PackingCGSTAmount, b.PackingSGSTAmount, b.PackingIGSTAmount = 0, 0, 0
	b.PackingChargeTax = 0
	if b.TaxesApplicableOnPacking {
		b.PackingCGSTAmount = percentOf(b.TotalPackingCharges, b.PackingCGSTRate)
		b.PackingSGSTAmount = percentOf(b.TotalPackingCharges, b.PackingSGSTRate)
		b.PackingIGSTAmount = percentOf(b.TotalPackingCharges, b.PackingIGSTRate)
		b.PackingChargeTax = b.PackingCGSTAmount + b.PackingSGSTAmount + b.PackingIGSTAmount
	}
}
