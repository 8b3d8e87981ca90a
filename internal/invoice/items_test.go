package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
func fltPtr(f float64) *float64 { return &f }

func TestCostAddon(t *testing.T) {
	tests := []struct {
		name    string
		addon   Addon
		wantTax float64
	}{
		{
			name:    "inclusive addon carries no tax",
			addon:   Addon{Price: 50, GSTInclusive: boolPtr(true), CGSTRate: 9, SGSTRate: 9},
			wantTax: 0,
		},
		{
			name:    "missing inclusive flag defaults to inclusive",
			addon:   Addon{Price: 50, CGSTRate: 9, SGSTRate: 9},
			wantTax: 0,
		},
		{
			name:    "exclusive addon gets component taxes",
			addon:   Addon{Price: 12, GSTInclusive: boolPtr(false), CGSTRate: 2.5, SGSTRate: 2.5},
			wantTax: 0.6, // 0.30 + 0.30
		},
		{
			name:    "exclusive but zero price stays untaxed",
			addon:   Addon{Price: 0, GSTInclusive: boolPtr(false), CGSTRate: 9, SGSTRate: 9},
			wantTax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := costAddon(tt.addon)
			assert.Equal(t, tt.wantTax, got.TaxAmount)
			assert.Equal(t, got.CGSTAmount+got.SGSTAmount+got.IGSTAmount, got.TaxAmount)
		})
	}
}

func TestCostAddonRoundsHalfUp(t *testing.T) {
	// 0.01% of 50 is 0.005, which must round to 0.01 (half-up, not
	// banker's rounding).
	got := costAddon(Addon{Price: 50, GSTInclusive: boolPtr(false), CGSTRate: 0.01})
	assert.Equal(t, 0.01, got.CGSTAmount)
}

func TestCostAddonGroupFreeLimit(t *testing.T) {
	addons := []Addon{
		{ID: 1, Selected: true, Price: 12},
		{ID: 2, Selected: true, Price: 8},
		{ID: 3, Selected: true, Price: 20},
		{ID: 4, Selected: false, Price: 1}, // never costed
	}

	tests := []struct {
		name      string
		freeLimit *int
		wantTotal float64
	}{
		{"nil free limit charges everything", nil, 40},
		{"free limit zero charges everything", intPtr(0), 40},
		{"cheapest one exempted", intPtr(1), 32},
		{"cheapest two exempted", intPtr(2), 20},
		{"limit equals selection count", intPtr(3), 0},
		{"limit beyond selection count", intPtr(5), 0},
		{"negative limit charges everything", intPtr(-1), 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc := costAddonGroup(AddonGroup{FreeLimit: tt.freeLimit, Addons: addons})
			assert.Equal(t, tt.wantTotal, gc.TotalAddonPrice)
			// Exempted addons are still listed, ascending by price.
			require.Len(t, gc.Addons, 3)
			assert.Equal(t, int64(2), gc.Addons[0].AddonID)
			assert.Equal(t, int64(1), gc.Addons[1].AddonID)
			assert.Equal(t, int64(3), gc.Addons[2].AddonID)
		})
	}
}

func TestCostAddonGroupFreeLimitSkipsTaxToo(t *testing.T) {
	gc := costAddonGroup(AddonGroup{
		FreeLimit: intPtr(1),
		Addons: []Addon{
			{ID: 1, Selected: true, Price: 10, GSTInclusive: boolPtr(false), CGSTRate: 5},
			{ID: 2, Selected: true, Price: 40, GSTInclusive: boolPtr(false), CGSTRate: 5},
		},
	})

	assert.Equal(t, 40.0, gc.TotalAddonPrice)
	assert.Equal(t, 2.0, gc.TotalAddonCGSTAmount) // only the 40 addon counts
	// The exempted addon's own cost record still carries its tax.
	assert.Equal(t, 0.5, gc.Addons[0].CGSTAmount)
}

func TestCostMenuItem(t *testing.T) {
	item := MenuItem{
		ID:       7,
		Name:     "Paneer Tikka Pizza",
		Price:    100,
		Quantity: 2,
		VariantGroups: []VariantGroup{
			{
				ID: 1, Selected: true,
				Variants: []Variant{
					{ID: 11, Selected: true, Price: 15},
					{ID: 12, Selected: false, Price: 99},
				},
			},
			{
				ID: 2, Selected: true,
				Variants: []Variant{{ID: 21, Selected: true, Price: 5}},
			},
		},
		AddonGroups: []AddonGroup{
			{
				ID: 3, Selected: true, FreeLimit: intPtr(0),
				Addons: []Addon{{ID: 31, Selected: true, Price: 10}},
			},
			{ID: 4, Selected: false, Addons: []Addon{{ID: 41, Selected: true, Price: 99}}},
		},
	}

	mc := costMenuItem(item)

	assert.Equal(t, 20.0, mc.TotalVariantCost, "variant cost is not quantity-scaled")
	assert.Equal(t, 240.0, mc.TotalItemAmount, "(100+20)*2")
	assert.Equal(t, 20.0, mc.TotalAddonGroupPrice, "10 * qty 2")
	assert.Equal(t, 260.0, mc.TotalIndividualFoodItemCost)
	require.Len(t, mc.Variants, 2)
	require.Len(t, mc.AddonGroups, 1, "unselected addon group dropped")
	assert.Zero(t, mc.DiscountAmount)
	assert.Zero(t, mc.ItemPackingCharges)
}

func TestCostMenuItemsSkipsZeroQuantity(t *testing.T) {
	b := &Breakout{}
	costMenuItems(b, []MenuItem{
		{ID: 1, Price: 100, Quantity: 1},
		{ID: 2, Price: 100, Quantity: 0},
		{ID: 3, Price: 100, Quantity: -2},
	})

	require.Len(t, b.MenuItems, 1)
	assert.Equal(t, 100.0, b.TotalFoodCost)
}

func TestApplyItemTaxes(t *testing.T) {
	t.Run("inclusive item carries no item tax", func(t *testing.T) {
		b := Compute([]MenuItem{{Price: 100, Quantity: 1, CGSTRate: 9, SGSTRate: 9}}, RestaurantConfig{}, false, nil, nil)
		assert.Zero(t, b.MenuItems[0].ItemTaxAmount)
		assert.Zero(t, b.TotalFoodTax)
	})

	t.Run("exclusive item taxed on item amount", func(t *testing.T) {
		b := Compute([]MenuItem{{
			Price: 100, Quantity: 2, GSTInclusive: boolPtr(false), CGSTRate: 2.5, SGSTRate: 2.5,
		}}, RestaurantConfig{}, false, nil, nil)

		mc := b.MenuItems[0]
		assert.Equal(t, 5.0, mc.ItemCGSTAmount)
		assert.Equal(t, 5.0, mc.ItemSGSTAmount)
		assert.Equal(t, 10.0, mc.ItemTaxAmount)
		assert.Equal(t, 10.0, b.TotalFoodTax)
	})

	t.Run("addon tax rolls into food totals scaled by quantity", func(t *testing.T) {
		b := Compute([]MenuItem{{
			Price: 100, Quantity: 3,
			AddonGroups: []AddonGroup{{
				Selected: true, FreeLimit: intPtr(0),
				Addons: []Addon{{Selected: true, Price: 10, GSTInclusive: boolPtr(false), CGSTRate: 5}},
			}},
		}}, RestaurantConfig{}, false, nil, nil)

		mc := b.MenuItems[0]
		assert.Equal(t, 1.5, mc.TotalAddonGroupCGSTAmount) // 0.5 * 3
		assert.Equal(t, 1.5, mc.TotalIndividualFoodItemCGST)
		assert.Equal(t, 1.5, b.TotalFoodCGST)
	})
}
