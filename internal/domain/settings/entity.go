package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// PenaltyType enum: how lateness converts into money.
type PenaltyType string

const (
	PenaltyFixed        PenaltyType = "fixed"
	PenaltyPerMinute    PenaltyType = "per_minute"
	PenaltyPer5Minutes  PenaltyType = "per_5_minutes"
	PenaltyPer10Minutes PenaltyType = "per_10_minutes"
)

func (t PenaltyType) Valid() bool {
	switch t {
	case PenaltyFixed, PenaltyPerMinute, PenaltyPer5Minutes, PenaltyPer10Minutes:
		return true
	}
	return false
}

// PayrollSettings is the facility-wide penalty policy and payroll defaults.
type PayrollSettings struct {
	ID          string
	PenaltyType PenaltyType
	PenaltyRate decimal.Decimal
	// AbsenceRate is charged per unexcused absent day. Zero means absences
	// are free until an admin configures a rate (DefaultAbsenceRate).
	AbsenceRate decimal.Decimal
	// NormDays is the default expected working days per month, used when a
	// staff profile does not override it.
	NormDays  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Defaults applied when no settings row exists yet.
const (
	DefaultNormDays = 22
)

var (
	// DefaultAbsenceRate is the documented fallback when the policy does
	// not configure an absence rate.
	DefaultAbsenceRate = decimal.Zero
)

func Default() PayrollSettings {
	return PayrollSettings{
		PenaltyType: PenaltyFixed,
		PenaltyRate: decimal.Zero,
		AbsenceRate: DefaultAbsenceRate,
		NormDays:    DefaultNormDays,
	}
}
