package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("payroll settings not found")
)
