package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	start, err := ParsePeriod("2025-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)

	for _, bad := range []string{"2025-13", "2025/01", "01-2025", "2025-1", ""} {
		_, err := ParsePeriod(bad)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "period %q", bad)
	}
}

func TestPeriodBoundsHalfOpen(t *testing.T) {
	from, to, err := PeriodBounds("2025-02")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestPeriodNeighbors(t *testing.T) {
	next, err := NextPeriod("2024-12")
	require.NoError(t, err)
	assert.Equal(t, "2025-01", next)

	prev, err := PrevPeriod("2025-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12", prev)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusDraft.CanTransition(StatusApproved))
	assert.True(t, StatusApproved.CanTransition(StatusPaid))

	assert.False(t, StatusDraft.CanTransition(StatusPaid))
	assert.False(t, StatusApproved.CanTransition(StatusDraft))
	assert.False(t, StatusPaid.CanTransition(StatusDraft))
	assert.False(t, StatusPaid.CanTransition(StatusApproved))
}

func TestFindFine(t *testing.T) {
	rec := Record{Fines: []FineEntry{{ID: "f1"}, {ID: "f2"}}}

	got, ok := rec.FindFine("f2")
	assert.True(t, ok)
	assert.Equal(t, "f2", got.ID)

	_, ok = rec.FindFine("f3")
	assert.False(t, ok)
}
