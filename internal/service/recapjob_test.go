package service

import (
	"testing"
	"time"

	"github.com/golfimprover/golfimprover/internal/notify"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviousMonth(t *testing.T) {
	assert.Equal(t, "2025-05", PreviousMonth(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12", PreviousMonth(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	// Day-of-month overflow must not skip back into the current month:
	// naive AddDate would turn March 31 into "February 31" = March 3.
	assert.Equal(t, "2026-02", PreviousMonth(time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-04", PreviousMonth(time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-12", PreviousMonth(time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)))
}

// The in-app notice names the month in its title and repeats the copy the
// recap email family uses.
func TestRecapNotificationCopy(t *testing.T) {
	auth, conn := newTestAuthService(t)

	user, err := auth.SignUp("golfer@example.com", "sup3r-secret")
	require.NoError(t, err)

	profileRepo := repository.NewProfileRepository(conn)
	profile, err := profileRepo.ByUserID(user.ID)
	require.NoError(t, err)

	notifications := NewNotificationService(repository.NewNotificationRepository(conn), notify.NewHub())
	email := NewEmailService("", "hello@example.com", "https://app.example.com", "GolfImprover", true)
	job := NewRecapJobService(repository.NewUserRepository(conn), profileRepo, nil, notifications, email, 1)

	job.sendRecapNotifications(user, profile, "2026-03")

	got, err := notifications.Notifications(user.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "March 2026 Recap Ready", got[0].Title)
	assert.Equal(t, "Your monthly golf improvement recap for March 2026 is now available. Check it out!", got[0].Message)
	assert.Equal(t, "/recap/2026-03", got[0].Link)
	assert.False(t, got[0].Read)
}

func TestMonthBounds(t *testing.T) {
	from, to, err := MonthBounds("2025-06")
	require.NoError(t, err)

	assert.Equal(t, 2025, from.Year())
	assert.Equal(t, time.June, from.Month())
	assert.Equal(t, 1, from.Day())

	// Upper bound is the last instant of the month
	assert.Equal(t, time.June, to.Month())
	assert.Equal(t, 30, to.Day())
	assert.True(t, to.After(time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)))

	_, _, err = MonthBounds("junk")
	assert.Error(t, err)
}
