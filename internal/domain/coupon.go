package domain

import (
	"github.com/speedyy/marketplace/internal/invoice"
)

// Coupon is the persisted coupon record. DiscountShareVendor is nil when
// the platform funds the whole discount.
type Coupon struct {
	ID                  int64
	Code                string
	Level               invoice.CouponLevel
	Type                invoice.CouponType
	MinOrderValue       float64
	MaxDiscount         float64
	DiscountPercentage  float64
	DiscountAmount      float64
	DiscountShareVendor *float64
	Active              bool
}

// Detail projects the coupon record into the engine's input.
func (c *Coupon) Detail() invoice.Coupon {
	return invoice.Coupon{
		ID:                  c.ID,
		Code:                c.Code,
		Level:               c.Level,
		Type:                c.Type,
		MinOrderValue:       c.MinOrderValue,
		MaxDiscount:         c.MaxDiscount,
		DiscountPercentage:  c.DiscountPercentage,
		DiscountAmount:      c.DiscountAmount,
		DiscountShareVendor: c.DiscountShareVendor,
	}
}
