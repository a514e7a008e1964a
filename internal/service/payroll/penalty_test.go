package payroll

import (
	"testing"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLatePenaltiesModes(t *testing.T) {
	tests := []struct {
		name        string
		penaltyType settings.PenaltyType
		want        string
	}{
		{"per minute", settings.PenaltyPerMinute, "850"},
		{"per 5 minutes rounds up", settings.PenaltyPer5Minutes, "200"},
		{"per 10 minutes rounds up", settings.PenaltyPer10Minutes, "100"},
		{"fixed once per day", settings.PenaltyFixed, "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := settings.PayrollSettings{
				PenaltyType: tt.penaltyType,
				PenaltyRate: money("50"),
			}

			got := LatePenalties(policy, []int{17})
			assert.True(t, got.Equal(money(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestLatePenaltiesPerDayNotPerSum(t *testing.T) {
	policy := settings.PayrollSettings{
		PenaltyType: settings.PenaltyPer10Minutes,
		PenaltyRate: money("50"),
	}

	// 7 + 7: two days of one interval each, not a merged 14-minute day.
	got := LatePenalties(policy, []int{7, 7})
	assert.True(t, got.Equal(money("100")), "got %s", got)
}

func TestLatePenaltiesFixedChargesEachLateDay(t *testing.T) {
	policy := settings.PayrollSettings{
		PenaltyType: settings.PenaltyFixed,
		PenaltyRate: money("50"),
	}

	got := LatePenalties(policy, []int{17, 3, 120})
	assert.True(t, got.Equal(money("150")), "got %s", got)
}

func TestLatePenaltiesUnknownTypeChargesNothing(t *testing.T) {
	policy := settings.PayrollSettings{
		PenaltyType: settings.PenaltyType("per_hour"),
		PenaltyRate: money("50"),
	}

	assert.True(t, LatePenalties(policy, []int{17, 40}).IsZero())
}

func TestLatePenaltiesNoLateDays(t *testing.T) {
	policy := settings.PayrollSettings{
		PenaltyType: settings.PenaltyPerMinute,
		PenaltyRate: money("50"),
	}

	assert.True(t, LatePenalties(policy, nil).IsZero())
}

func TestAbsencePenalties(t *testing.T) {
	policy := settings.PayrollSettings{AbsenceRate: money("1000")}

	got := AbsencePenalties(policy, 3)
	assert.True(t, got.Equal(money("3000")), "got %s", got)
}

func TestAbsencePenaltiesZeroRateChargesNothing(t *testing.T) {
	policy := settings.PayrollSettings{AbsenceRate: decimal.Zero}

	assert.True(t, AbsencePenalties(policy, 5).IsZero())
}
