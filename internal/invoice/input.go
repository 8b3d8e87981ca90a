package invoice

// Cart input model. These structs arrive from the cart/order-placement
// workflow and are costed as-is: the calculator performs no validation of
// its own (upstream cart validation owns input correctness). Optional
// fields use pointers so that a legitimate zero is distinguishable from
// "not provided".

// Addon is a single addon option inside an addon group, as selected on
// the cart. GSTInclusive nil means the addon price already contains tax.
type Addon struct {
	ID           int64    `json:"addon_id"`
	Name         string   `json:"addon_name"`
	Selected     bool     `json:"is_selected"`
	Price        float64  `json:"price"`
	DisplayPrice float64  `json:"display_price"`
	GSTInclusive *bool    `json:"gst_inclusive,omitempty"`
	CGSTRate     float64  `json:"cgst_rate"`
	SGSTRate     float64  `json:"sgst_rate"`
	IGSTRate     float64  `json:"igst_rate"`
}

// AddonGroup groups addons and carries the group's free-limit policy:
// the FreeLimit cheapest selected addons are exempt from cost.
// FreeLimit nil defaults to -1, meaning every selected addon is charged.
type AddonGroup struct {
	ID        int64   `json:"addon_group_id"`
	Name      string  `json:"addon_group_name"`
	Selected  bool    `json:"is_selected"`
	FreeLimit *int    `json:"free_limit,omitempty"`
	Addons    []Addon `json:"addons"`
}

// Variant is one choice inside a variant group (e.g. size, crust).
type Variant struct {
	ID           int64   `json:"variant_id"`
	Name         string  `json:"variant_name"`
	Selected     bool    `json:"is_selected"`
	Price        float64 `json:"price"`
	DisplayPrice float64 `json:"display_price"`
}

// VariantGroup is an ordered list of variants for a menu item.
type VariantGroup struct {
	ID       int64     `json:"variant_group_id"`
	Name     string    `json:"variant_group_name"`
	Selected bool      `json:"is_selected"`
	Variants []Variant `json:"variants"`
}

// MenuItem is one cart line. Items with Quantity <= 0 are silently
// excluded from the invoice. PackingCharges is the per-item packing rate
// used when the restaurant charges packing at item level; it is a flat
// amount in fixed mode and a percentage in percent mode.
type MenuItem struct {
	ID             int64          `json:"menu_item_id"`
	Name           string         `json:"menu_item_name"`
	Price          float64        `json:"price"`
	Quantity       int            `json:"quantity"`
	PackingCharges float64        `json:"packing_charges"`
	GSTInclusive   *bool          `json:"gst_inclusive,omitempty"`
	CGSTRate       float64        `json:"item_cgst"`
	SGSTRate       float64        `json:"item_sgst"`
	IGSTRate       float64        `json:"item_igst"`
	VariantGroups  []VariantGroup `json:"variant_groups,omitempty"`
	AddonGroups    []AddonGroup   `json:"addon_groups,omitempty"`
}

// PackingChargeType selects how the restaurant charges packing.
type PackingChargeType string

const (
	PackingChargeNone  PackingChargeType = "none"
	PackingChargeOrder PackingChargeType = "order"
	PackingChargeItem  PackingChargeType = "item"
)

// ChargeMode selects between a flat amount and a percentage rate.
type ChargeMode string

const (
	ChargeModeFixed   ChargeMode = "fixed"
	ChargeModePercent ChargeMode = "percent"
)

// DeliveryPayer identifies who bears the delivery charge.
type DeliveryPayer string

const (
	DeliveryPaidByCustomer   DeliveryPayer = "customer"
	DeliveryPaidByRestaurant DeliveryPayer = "restaurant"
	DeliveryPaidBySpeedyy    DeliveryPayer = "speedyy"
)

// RestaurantConfig is the restaurant's charge and tax configuration as it
// applies to a single order.
type RestaurantConfig struct {
	PackingChargeType         PackingChargeType
	PackingChargeFixedPercent ChargeMode
	// PackingCharge is the order-level packing rate: a flat amount in
	// fixed mode, a percentage of total food cost in percent mode.
	PackingCharge            float64
	TaxesApplicableOnPacking bool
	PackingCGSTRate          float64
	PackingSGSTRate          float64
	PackingIGSTRate          float64

	DeliveryChargePaidBy DeliveryPayer
	DeliveryCGSTRate     float64
	DeliverySGSTRate     float64
	DeliveryIGSTRate     float64
}

// CouponLevel distinguishes restaurant-funded coupons from platform ones.
// Restaurant-level coupons reduce the taxable base of each item.
type CouponLevel string

const (
	CouponLevelRestaurant CouponLevel = "restaurant"
	CouponLevelGlobal     CouponLevel = "global"
)

// CouponType "upto" caps a percentage discount at MaxDiscount rupees.
type CouponType string

const (
	CouponTypeUpto CouponType = "upto"
	CouponTypeFlat CouponType = "flat"
)

// Coupon is the coupon detail record handed to SetCoupon. Exactly one of
// DiscountPercentage and DiscountAmount is expected to be set.
type Coupon struct {
	ID                 int64
	Code               string
	Level              CouponLevel
	Type               CouponType
	MinOrderValue      float64
	MaxDiscount        float64
	DiscountPercentage float64
	DiscountAmount     float64
	// DiscountShareVendor is the percentage of the applied discount borne
	// by the restaurant; nil means the platform funds all of it.
	DiscountShareVendor *float64
}

func gstInclusive(p *bool) bool {
	if p == nil {
		return true
	}
	return *p
}

func freeLimit(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}
