package plans

import "github.com/shopspring/decimal"

// BillingCycleDays is the fixed month length used for proration, regardless of the
// calendar month or the plan's actual cycle.
const BillingCycleDays = 30

// ProratedUpgradePrice returns the price difference between two plans spread over
// BillingCycleDays and charged for remainingDays. The result is negative when the
// new plan is cheaper and is neither rounded nor clamped.
//
// The difference is multiplied before dividing so whole-number results stay exact.
func ProratedUpgradePrice(currentPrice, newPrice decimal.Decimal, remainingDays int) decimal.Decimal {
	priceDifference := newPrice.Sub(currentPrice)
	return priceDifference.
		Mul(decimal.NewFromInt(int64(remainingDays))).
		Div(decimal.NewFromInt(BillingCycleDays))
}
