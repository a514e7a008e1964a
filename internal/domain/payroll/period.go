package payroll

import "time"

const periodLayout = "2006-01"

// ParsePeriod parses a "YYYY-MM" period identifier into the first day of the
// month, UTC.
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse(periodLayout, period)
	if err != nil {
		return time.Time{}, ErrInvalidPeriod
	}
	return t, nil
}

// PeriodBounds returns the half-open [start, end) date range of a period.
func PeriodBounds(period string) (time.Time, time.Time, error) {
	start, err := ParsePeriod(period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

// NextPeriod returns the period identifier of the following month.
func NextPeriod(period string) (string, error) {
	start, err := ParsePeriod(period)
	if err != nil {
		return "", err
	}
	return start.AddDate(0, 1, 0).Format(periodLayout), nil
}

// PrevPeriod returns the period identifier of the preceding month.
func PrevPeriod(period string) (string, error) {
	start, err := ParsePeriod(period)
	if err != nil {
		return "", err
	}
	return start.AddDate(0, -1, 0).Format(periodLayout), nil
}

// PeriodOf returns the period identifier containing t.
func PeriodOf(t time.Time) string {
	return t.Format(periodLayout)
}
