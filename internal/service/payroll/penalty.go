package payroll

import (
	"github.com/Dammmup/detsad-f-sub001/internal/domain/settings"
	"github.com/shopspring/decimal"
)

var (
	five = decimal.NewFromInt(5)
	ten  = decimal.NewFromInt(10)
)

// LatePenalties converts per-day lateness into money under the configured
// policy. Each day's penalty is rounded to the smallest currency unit before
// summation, and the result never goes below zero.
func LatePenalties(policy settings.PayrollSettings, lateMinutesByDay []int) decimal.Decimal {
	total := decimal.Zero

	for _, minutes := range lateMinutesByDay {
		if minutes <= 0 {
			continue
		}
		mins := decimal.NewFromInt(int64(minutes))

		var day decimal.Decimal
		switch policy.PenaltyType {
		case settings.PenaltyPerMinute:
			day = mins.Mul(policy.PenaltyRate)
		case settings.PenaltyPer5Minutes:
			// Partial intervals round up.
			day = mins.Div(five).Ceil().Mul(policy.PenaltyRate)
		case settings.PenaltyPer10Minutes:
			day = mins.Div(ten).Ceil().Mul(policy.PenaltyRate)
		case settings.PenaltyFixed:
			// charged once per late day, independent of minutes
			day = policy.PenaltyRate
		default:
			// an unrecognized policy never bills anyone
			continue
		}

		total = total.Add(day.Round(2))
	}

	return clampMoney(total)
}

// AbsencePenalties charges the policy's absence rate per unexcused absent
// day. Sick leave and vacation never reach here; the aggregator excludes
// them.
func AbsencePenalties(policy settings.PayrollSettings, unexcusedAbsences int) decimal.Decimal {
	if unexcusedAbsences <= 0 {
		return decimal.Zero
	}

	rate := policy.AbsenceRate
	if rate.IsZero() {
		rate = settings.DefaultAbsenceRate
	}

	total := rate.Mul(decimal.NewFromInt(int64(unexcusedAbsences))).Round(2)
	return clampMoney(total)
}

func clampMoney(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
