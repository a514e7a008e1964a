package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role enum. Excluded roles occupy the facility but are billed for it,
// never paid by it.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleTeacher         Role = "teacher"
	RoleAssistant       Role = "assistant"
	RoleCook            Role = "cook"
	RoleNurse           Role = "nurse"
	RoleTenant          Role = "tenant"
	RoleSpeechTherapist Role = "speech_therapist"
)

var excludedRoles = map[Role]bool{
	RoleTenant:          true,
	RoleSpeechTherapist: true,
}

// Profile is the payroll-relevant slice of a staff member.
type Profile struct {
	ID             string
	FullName       string
	Role           Role
	BaseSalary     decimal.Decimal
	BaseSalaryType string // "month" | "shift"
	ShiftRate      decimal.Decimal
	NormDays       int // expected working days per month; 0 means "use settings default"
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PayrollEligible reports whether the profile can appear on a payroll sheet.
func (p Profile) PayrollEligible() bool {
	return p.Active && !excludedRoles[p.Role]
}
