package invoice

// applyCoupon attaches the coupon to the breakout and distributes its
// discount across menu item lines in cart order. When the order falls
// below the coupon's minimum order value the coupon stays attached with
// every discount field at zero.
func applyCoupon(b *Breakout, c Coupon) {
	cc := &CouponCost{
		CouponID:             c.ID,
		Code:                 c.Code,
		Level:                c.Level,
		Type:                 c.Type,
		MinOrderValueRupees:  c.MinOrderValue,
		MaxDiscountRupees:    c.MaxDiscount,
		DiscountPercentage:   c.DiscountPercentage,
		DiscountAmountRupees: c.DiscountAmount,
	}
	if c.DiscountShareVendor != nil {
		cc.DiscountSharePercentageVendor = *c.DiscountShareVendor
	}
	b.CouponDetails = cc

	if b.TotalFoodCost < c.MinOrderValue {
		return
	}

	if c.DiscountPercentage > 0 {
		allocatePercentageDiscount(b, cc, c)
	} else {
		allocateFlatDiscount(b, cc, c)
	}

	if c.DiscountShareVendor != nil {
		cc.DiscountShareAmountVendor = percentOf(cc.DiscountAmountApplied, *c.DiscountShareVendor)
	}
	cc.DiscountShareAmountSpeedyy = cc.DiscountAmountApplied - cc.DiscountShareAmountVendor
}

// allocatePercentageDiscount offers each line its percentage of the line
// cost, clamped to the remaining budget. The budget is the percentage of
// total food cost, capped by the rupee ceiling for UPTO coupons and never
// more than the food cost itself. Items are visited once, in cart order;
// lines after the budget runs out get nothing.
func allocatePercentageDiscount(b *Breakout, cc *CouponCost, c Coupon) {
	available := percentOf(b.TotalFoodCost, c.DiscountPercentage)
	if c.Type == CouponTypeUpto && available > c.MaxDiscount {
		available = c.MaxDiscount
	}
	if available > b.TotalFoodCost {
		available = b.TotalFoodCost
	}

	for i := range b.MenuItems {
		mc := &b.MenuItems[i]
		discount := percentOf(mc.TotalIndividualFoodItemCost, c.DiscountPercentage)
		if discount > available {
			discount = available
		}
		if discount > 0 {
			mc.DiscountAmount = discount
			cc.DiscountAmountApplied += discount
			available -= discount
		}
	}
}

// allocateFlatDiscount offers each line its full cost as the candidate
// discount, clamped to the remaining budget.
func allocateFlatDiscount(b *Breakout, cc *CouponCost, c Coupon) {
	available := c.DiscountAmount
	if available > b.TotalFoodCost {
		available = b.TotalFoodCost
	}

	for i := range b.MenuItems {
		mc := &b.MenuItems[i]
		discount := mc.TotalIndividualFoodItemCost
		if discount > available {
			discount = available
		}
		if discount > 0 {
			mc.DiscountAmount = discount
			cc.DiscountAmountApplied += discount
			available -= discount
		}
	}
}
