package invoice

// BreakoutVersion is embedded in description.version and gates invoice
// PDF availability downstream.
const BreakoutVersion = "0.0.2"

// The breakout is persisted verbatim as JSON on the order record
// (invoice_breakout), so the field names below are a schema contract with
// downstream consumers (payout batches, refund settlement, PDF rendering).

// AddonCost is the computed cost line for one selected addon.
// Tax amounts are zero unless the addon is tax-exclusive with a positive
// price.
type AddonCost struct {
	AddonID      int64   `json:"addon_id"`
	AddonName    string  `json:"addon_name"`
	Price        float64 `json:"price"`
	DisplayPrice float64 `json:"display_price"`
	GSTInclusive bool    `json:"gst_inclusive"`
	CGSTAmount   float64 `json:"cgst_amount"`
	SGSTAmount   float64 `json:"sgst_amount"`
	IGSTAmount   float64 `json:"igst_amount"`
	TaxAmount    float64 `json:"tax_amount"`
}

// AddonGroupCost aggregates the selected addons of one group. Addons are
// listed ascending by price; the first FreeLimit of them (when
// FreeLimit >= 0) are listed but excluded from the group totals.
type AddonGroupCost struct {
	AddonGroupID         int64       `json:"addon_group_id"`
	AddonGroupName       string      `json:"addon_group_name"`
	Addons               []AddonCost `json:"addons"`
	FreeLimit            int         `json:"free_limit"`
	TotalAddonPrice      float64     `json:"total_addon_price"`
	TotalAddonCGSTAmount float64     `json:"total_addon_cgst_amount"`
	TotalAddonSGSTAmount float64     `json:"total_addon_sgst_amount"`
	TotalAddonIGSTAmount float64     `json:"total_addon_igst_amount"`
	TotalAddonTaxAmount  float64     `json:"total_addon_tax_amount"`
}

// VariantCost is the computed line for one selected variant.
type VariantCost struct {
	VariantGroupID   int64   `json:"variant_group_id"`
	VariantGroupName string  `json:"variant_group_name"`
	VariantID        int64   `json:"variant_id"`
	VariantName      string  `json:"variant_name"`
	Price            float64 `json:"price"`
	DisplayPrice     float64 `json:"display_price"`
}

// MenuItemCost is the fully costed line for one cart item.
type MenuItemCost struct {
	MenuItemID     int64   `json:"menu_item_id"`
	ItemName       string  `json:"item_name"`
	ItemPrice      float64 `json:"item_price"`
	ItemQuantity   int     `json:"item_quantity"`
	GSTInclusive   bool    `json:"gst_inclusive"`
	ItemCGSTRate   float64 `json:"item_cgst"`
	ItemSGSTRate   float64 `json:"item_sgst"`
	ItemIGSTRate   float64 `json:"item_igst"`
	PackingCharges float64 `json:"packing_charges"`

	Variants         []VariantCost    `json:"variants"`
	AddonGroups      []AddonGroupCost `json:"addon_groups"`
	TotalVariantCost float64          `json:"total_variant_cost"`

	// TotalItemAmount = (item price + total variant cost) * quantity.
	TotalItemAmount float64 `json:"total_item_amount"`

	ItemCGSTAmount float64 `json:"item_cgst_amount"`
	ItemSGSTAmount float64 `json:"item_sgst_amount"`
	ItemIGSTAmount float64 `json:"item_igst_amount"`
	ItemTaxAmount  float64 `json:"item_tax_amount"`

	TotalAddonGroupPrice      float64 `json:"total_addon_group_price"`
	TotalAddonGroupCGSTAmount float64 `json:"total_addon_group_cgst_amount"`
	TotalAddonGroupSGSTAmount float64 `json:"total_addon_group_sgst_amount"`
	TotalAddonGroupIGSTAmount float64 `json:"total_addon_group_igst_amount"`
	TotalAddonGroupTaxAmount  float64 `json:"total_addon_group_tax_amount"`

	TotalIndividualFoodItemCost float64 `json:"total_individual_food_item_cost"`
	TotalIndividualFoodItemCGST float64 `json:"total_individual_food_item_cgst"`
	TotalIndividualFoodItemSGST float64 `json:"total_individual_food_item_sgst"`
	TotalIndividualFoodItemIGST float64 `json:"total_individual_food_item_igst"`
	TotalIndividualFoodItemTax  float64 `json:"total_individual_food_item_tax"`

	// DiscountAmount is set by coupon allocation, ItemPackingCharges by
	// item-level packing. Both default to zero.
	DiscountAmount     float64 `json:"discount_amount"`
	ItemPackingCharges float64 `json:"item_packing_charges"`
}

// CouponCost records the coupon attached to the order and the discount
// actually applied, split between vendor and platform shares.
type CouponCost struct {
	CouponID                      int64       `json:"coupon_id"`
	Code                          string      `json:"code"`
	Level                         CouponLevel `json:"level"`
	Type                          CouponType  `json:"type"`
	MinOrderValueRupees           float64     `json:"min_order_value_rupees"`
	MaxDiscountRupees             float64     `json:"max_discount_rupees"`
	DiscountPercentage            float64     `json:"discount_percentage"`
	DiscountAmountRupees          float64     `json:"discount_amount_rupees"`
	DiscountSharePercentageVendor float64     `json:"discount_share_percentage_vendor"`
	DiscountAmountApplied         float64     `json:"discount_amount_applied"`
	DiscountShareAmountVendor     float64     `json:"discount_share_amount_vendor"`
	DiscountShareAmountSpeedyy    float64     `json:"discount_share_amount_speedyy"`
}

// RefundSettlement is written onto the breakout late in the order
// lifecycle by the refund workflow; the calculator never touches it.
type RefundSettlement struct {
	SettledBy             string  `json:"refund_settled_by"`
	CustomerAmount        float64 `json:"refund_settlement_customer_amount"`
	VendorPayoutAmount    float64 `json:"refund_settlement_vendor_payout_amount"`
	DeliveryPartnerAmount float64 `json:"refund_settlement_delivery_partner_amount"`
	Remarks               string  `json:"refund_settlement_remarks"`
}

// Description tags the breakout schema version.
type Description struct {
	Version string `json:"version"`
}

// Breakout is the root invoice aggregate for one order.
type Breakout struct {
	MenuItems     []MenuItemCost `json:"menu_items"`
	CouponDetails *CouponCost    `json:"coupon_details,omitempty"`
	IsPOD         bool           `json:"is_pod"`

	PackingChargeType         PackingChargeType `json:"packing_charge_type"`
	PackingChargeFixedPercent ChargeMode        `json:"packing_charge_fixed_percent"`
	PackingCharge             float64           `json:"packing_charge"`
	OrderPackingCharge        float64           `json:"order_packing_charge"`
	TaxesApplicableOnPacking  bool              `json:"taxes_applicable_on_packing"`
	PackingCGSTRate           float64           `json:"packing_cgst"`
	PackingSGSTRate           float64           `json:"packing_sgst"`
	PackingIGSTRate           float64           `json:"packing_igst"`
	PackingCGSTAmount         float64           `json:"packing_cgst_amount"`
	PackingSGSTAmount         float64           `json:"packing_sgst_amount"`
	PackingIGSTAmount         float64           `json:"packing_igst_amount"`
	PackingChargeTax          float64           `json:"packing_charge_tax"`
	TotalPackingCharges       float64           `json:"total_packing_charges"`

	TotalFoodCost float64 `json:"total_food_cost"`
	TotalFoodCGST float64 `json:"total_food_cgst"`
	TotalFoodSGST float64 `json:"total_food_sgst"`
	TotalFoodIGST float64 `json:"total_food_igst"`
	TotalFoodTax  float64 `json:"total_food_tax"`

	TotalCGST float64 `json:"total_cgst"`
	TotalSGST float64 `json:"total_sgst"`
	TotalIGST float64 `json:"total_igst"`
	TotalTax  float64 `json:"total_tax"`

	DeliveryChargePaidBy DeliveryPayer `json:"delivery_charge_paid_by"`
	// DeliveryCharges is the raw delivery cost grossed up by the delivery
	// tax rates below.
	DeliveryCharges  float64 `json:"delivery_charges"`
	DeliveryCGSTRate float64 `json:"delivery_cgst"`
	DeliverySGSTRate float64 `json:"delivery_sgst"`
	DeliveryIGSTRate float64 `json:"delivery_igst"`

	TransactionChargesRate       float64 `json:"transaction_charges_rate"`
	TransactionCharges           float64 `json:"transaction_charges"`
	TransactionRefundChargesRate float64 `json:"transaction_refund_charges_rate"`
	TransactionRefundCharges     float64 `json:"transaction_refund_charges"`

	TotalCustomerPayable      float64 `json:"total_customer_payable"`
	VendorPayoutAmount        float64 `json:"vendor_payout_amount"`
	VendorCancellationCharges float64 `json:"vendor_cancellation_charges"`

	PaymentTransactionID    string            `json:"payment_transaction_id,omitempty"`
	PayoutTransactionID     string            `json:"payout_transaction_id,omitempty"`
	RefundSettlementDetails *RefundSettlement `json:"refund_settlement_details,omitempty"`

	Description Description `json:"description"`
}
