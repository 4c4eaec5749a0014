package model

import (
	"github.com/shopspring/decimal"
)

const (
	PolicyStandard  = "standard"
	PolicyGraduated = "graduated"
)

var hundred = decimal.NewFromInt(100)

// RefundTier grants Percentage of the booking total when the guest cancels at least
// MinDaysBeforeCheckIn days ahead.
type RefundTier struct {
	MinDaysBeforeCheckIn int             `json:"minDaysBeforeCheckIn"`
	Percentage           decimal.Decimal `json:"percentage"`
}

// RefundPolicy is a named refund table. Tiers are ordered from the most generous down; the
// first tier the notice period satisfies wins and anything shorter refunds nothing.
type RefundPolicy struct {
	Name  string       `json:"name"`
	Tiers []RefundTier `json:"tiers"`
}

func (p RefundPolicy) Percentage(daysBeforeCheckIn int) decimal.Decimal {
	for _, tier := range p.Tiers {
		if daysBeforeCheckIn >= tier.MinDaysBeforeCheckIn {
			return tier.Percentage
		}
	}

	return decimal.Zero
}

// Refund is the share of total the policy returns. It is never negative.
func (p RefundPolicy) Refund(total decimal.Decimal, daysBeforeCheckIn int) decimal.Decimal {
	if total.IsNegative() {
		return decimal.Zero
	}

	return total.Mul(p.Percentage(daysBeforeCheckIn)).Div(hundred)
}

var refundPolicies = map[string]RefundPolicy{
	PolicyStandard: {
		Name: PolicyStandard,
		Tiers: []RefundTier{
			{MinDaysBeforeCheckIn: 7, Percentage: decimal.NewFromInt(100)},
			{MinDaysBeforeCheckIn: 3, Percentage: decimal.NewFromInt(50)},
		},
	},
	// Front-desk table: more than 7, 3 and 0 days ahead, counted in whole days.
	PolicyGraduated: {
		Name: PolicyGraduated,
		Tiers: []RefundTier{
			{MinDaysBeforeCheckIn: 8, Percentage: decimal.NewFromInt(90)},
			{MinDaysBeforeCheckIn: 4, Percentage: decimal.NewFromInt(50)},
			{MinDaysBeforeCheckIn: 1, Percentage: decimal.NewFromInt(25)},
		},
	},
}

func LookupRefundPolicy(name string) (RefundPolicy, bool) {
	policy, ok := refundPolicies[name]

	return policy, ok
}
