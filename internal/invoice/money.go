package invoice

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// All percentage-derived money amounts round half-up to two decimals.
// Downstream reconciliation depends on bit-for-bit parity with invoices
// already issued, so this must not change to banker's rounding.

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// percentOf returns rate percent of base, rounded to two decimals.
func percentOf(base, rate float64) float64 {
	if base == 0 || rate == 0 {
		return 0
	}
	d := decimal.NewFromFloat(base).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100))
	f, _ := d.Round(2).Float64()
	return f
}

// Transaction charge rates are read from the environment on every totals
// run so operations can adjust them without a redeploy.
const (
	defaultTransactionChargesRate       = 3.0
	defaultTransactionRefundChargesRate = 3.0
)

func transactionChargeRates() (charges, refundCharges float64) {
	return envFloat("TRANSACTION_CHARGES_RATE", defaultTransactionChargesRate),
		envFloat("TRANSACTION_REFUND_CHARGES_RATE", defaultTransactionRefundChargesRate)
}

func envFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
