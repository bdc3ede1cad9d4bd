package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Mid-month rolls to the first of next month
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, loc)
	next := NextRun(now)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, loc), next)

	// Already on the first still schedules the following month
	now = time.Date(2025, 6, 1, 0, 0, 1, 0, loc)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, loc), NextRun(now))

	// December rolls into January
	now = time.Date(2025, 12, 20, 23, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, loc), NextRun(now))
}

func TestNextRun_KeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	next := NextRun(time.Date(2025, 6, 15, 0, 0, 0, 0, loc))
	assert.Equal(t, loc, next.Location())
}
