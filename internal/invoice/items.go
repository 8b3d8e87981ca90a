package invoice

import "sort"

// costAddon prices one addon line. Exclusive-tax addons with a positive
// price get per-component tax amounts; everything else carries zero tax.
func costAddon(a Addon) AddonCost {
	ac := AddonCost{
		AddonID:      a.ID,
		AddonName:    a.Name,
		Price:        a.Price,
		DisplayPrice: a.DisplayPrice,
		GSTInclusive: gstInclusive(a.GSTInclusive),
	}
	if !ac.GSTInclusive && a.Price > 0 {
		ac.CGSTAmount = percentOf(a.Price, a.CGSTRate)
		ac.SGSTAmount = percentOf(a.Price, a.SGSTRate)
		ac.IGSTAmount = percentOf(a.Price, a.IGSTRate)
		ac.TaxAmount = ac.CGSTAmount + ac.SGSTAmount + ac.IGSTAmount
	}
	return ac
}

// costAddonGroup aggregates the selected addons of one group. Selected
// addons are sorted ascending by price (stable for equal prices) and the
// first FreeLimit of them ride free: they are still listed, but their
// price and tax stay out of the group totals. FreeLimit < 0 charges
// every selected addon.
func costAddonGroup(g AddonGroup) AddonGroupCost {
	gc := AddonGroupCost{
		AddonGroupID:   g.ID,
		AddonGroupName: g.Name,
		FreeLimit:      freeLimit(g.FreeLimit),
	}

	selected := make([]Addon, 0, len(g.Addons))
	for _, a := range g.Addons {
		if a.Selected {
			selected = append(selected, a)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Price < selected[j].Price
	})

	for i, a := range selected {
		ac := costAddon(a)
		gc.Addons = append(gc.Addons, ac)
		if gc.FreeLimit >= 0 && i < gc.FreeLimit {
			continue
		}
		gc.TotalAddonPrice += a.Price
		gc.TotalAddonCGSTAmount += ac.CGSTAmount
		gc.TotalAddonSGSTAmount += ac.SGSTAmount
		gc.TotalAddonIGSTAmount += ac.IGSTAmount
		gc.TotalAddonTaxAmount += ac.TaxAmount
	}
	return gc
}

// costMenuItem combines base price, variants and addon groups into one
// fully costed line. Item-level tax is computed later, in the tax phase,
// because its base depends on coupon allocation.
func costMenuItem(it MenuItem) MenuItemCost {
	mc := MenuItemCost{
		MenuItemID:     it.ID,
		ItemName:       it.Name,
		ItemPrice:      it.Price,
		ItemQuantity:   it.Quantity,
		GSTInclusive:   gstInclusive(it.GSTInclusive),
		ItemCGSTRate:   it.CGSTRate,
		ItemSGSTRate:   it.SGSTRate,
		ItemIGSTRate:   it.IGSTRate,
		PackingCharges: it.PackingCharges,
	}

	var groupPrice, groupCGST, groupSGST, groupIGST, groupTax float64
	for _, g := range it.AddonGroups {
		if !g.Selected {
			continue
		}
		gc := costAddonGroup(g)
		mc.AddonGroups = append(mc.AddonGroups, gc)
		groupPrice += gc.TotalAddonPrice
		groupCGST += gc.TotalAddonCGSTAmount
		groupSGST += gc.TotalAddonSGSTAmount
		groupIGST += gc.TotalAddonIGSTAmount
		groupTax += gc.TotalAddonTaxAmount
	}

	qty := float64(it.Quantity)
	mc.TotalAddonGroupPrice = groupPrice * qty
	mc.TotalAddonGroupCGSTAmount = groupCGST * qty
	mc.TotalAddonGroupSGSTAmount = groupSGST * qty
	mc.TotalAddonGroupIGSTAmount = groupIGST * qty
	mc.TotalAddonGroupTaxAmount = groupTax * qty

	for _, vg := range it.VariantGroups {
		if !vg.Selected {
			continue
		}
		for _, v := range vg.Variants {
			if !v.Selected {
				continue
			}
			mc.Variants = append(mc.Variants, VariantCost{
				VariantGroupID:   vg.ID,
				VariantGroupName: vg.Name,
				VariantID:        v.ID,
				VariantName:      v.Name,
				Price:            v.Price,
				DisplayPrice:     v.DisplayPrice,
			})
			mc.TotalVariantCost += v.Price
		}
	}

	mc.TotalItemAmount = (it.Price + mc.TotalVariantCost) * qty
	mc.TotalIndividualFoodItemCost = mc.TotalItemAmount + mc.TotalAddonGroupPrice
	return mc
}

// costMenuItems costs every cart line with a positive quantity, in cart
// order, and accumulates the total food cost.
func costMenuItems(b *Breakout, items []MenuItem) {
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		mc := costMenuItem(it)
		b.MenuItems = append(b.MenuItems, mc)
		b.TotalFoodCost += mc.TotalIndividualFoodItemCost
	}
}

// applyItemTaxes computes item-level tax for every exclusive-tax line and
// rolls the food tax components up to breakout level. When a
// restaurant-level coupon is active, the taxable base is the item amount
// net of the discount allocated to that line, which is why this runs
// after coupon allocation.
func applyItemTaxes(b *Breakout) {
	restaurantCoupon := b.CouponDetails != nil && b.CouponDetails.Level == CouponLevelRestaurant

	b.TotalFoodCGST, b.TotalFoodSGST, b.TotalFoodIGST, b.TotalFoodTax = 0, 0, 0, 0
	for i := range b.MenuItems {
		mc := &b.MenuItems[i]
		mc.ItemCGSTAmount, mc.ItemSGSTAmount, mc.ItemIGSTAmount = 0, 0, 0
		if !mc.GSTInclusive && mc.TotalItemAmount > 0 {
			base := mc.TotalItemAmount
			if restaurantCoupon {
				base -= mc.DiscountAmount
			}
			mc.ItemCGSTAmount = percentOf(base, mc.ItemCGSTRate)
			mc.ItemSGSTAmount = percentOf(base, mc.ItemSGSTRate)
			mc.ItemIGSTAmount = percentOf(base, mc.ItemIGSTRate)
		}
		mc.ItemTaxAmount = round2(mc.ItemCGSTAmount + mc.ItemSGSTAmount + mc.ItemIGSTAmount)

		mc.TotalIndividualFoodItemCGST = mc.ItemCGSTAmount + mc.TotalAddonGroupCGSTAmount
		mc.TotalIndividualFoodItemSGST = mc.ItemSGSTAmount + mc.TotalAddonGroupSGSTAmount
		mc.TotalIndividualFoodItemIGST = mc.ItemIGSTAmount + mc.TotalAddonGroupIGSTAmount
		mc.TotalIndividualFoodItemTax = mc.TotalIndividualFoodItemCGST +
			mc.TotalIndividualFoodItemSGST + mc.TotalIndividualFoodItemIGST

		b.TotalFoodCGST += mc.TotalIndividualFoodItemCGST
		b.TotalFoodSGST += mc.TotalIndividualFoodItemSGST
		b.TotalFoodIGST += mc.TotalIndividualFoodItemIGST
		b.TotalFoodTax += mc.TotalIndividualFoodItemTax
	}
}
