package domain

import (
	"github.com/google/uuid"

	"github.com/speedyy/marketplace/internal/invoice"
)

// Restaurant is the vendor record with the charge and tax configuration
// the invoice engine consumes.
type Restaurant struct {
	ID     uuid.UUID
	Name   string
	Active bool

	PackingChargeType         invoice.PackingChargeType
	PackingChargeFixedPercent invoice.ChargeMode
	PackingCharge             float64
	TaxesApplicableOnPacking  bool
	PackingCGSTRate           float64
	PackingSGSTRate           float64
	PackingIGSTRate           float64

	DeliveryChargePaidBy invoice.DeliveryPayer
	DeliveryCGSTRate     float64
	DeliverySGSTRate     float64
	DeliveryIGSTRate     float64
}

// ChargeConfig projects the restaurant record into the engine's input.
func (r *Restaurant) ChargeConfig() invoice.RestaurantConfig {
	return invoice.RestaurantConfig{
		PackingChargeType:         r.PackingChargeType,
		PackingChargeFixedPercent: r.PackingChargeFixedPercent,
		PackingCharge:             r.PackingCharge,
		TaxesApplicableOnPacking:  r.TaxesApplicableOnPacking,
		PackingCGSTRate:           r.PackingCGSTRate,
		PackingSGSTRate:           r.PackingSGSTRate,
		PackingIGSTRate:           r.PackingIGSTRate,
		DeliveryChargePaidBy:      r.DeliveryChargePaidBy,
		DeliveryCGSTRate:          r.DeliveryCGSTRate,
		DeliverySGSTRate:          r.DeliverySGSTRate,
		DeliveryIGSTRate:          r.DeliveryIGSTRate,
	}
}
