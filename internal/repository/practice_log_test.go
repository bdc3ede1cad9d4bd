package repository

import (
	"testing"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLog(userID, title string, date time.Time) *model.PracticeLog {
	return &model.PracticeLog{
		ID:           uuid.New().String(),
		UserID:       userID,
		Type:         model.LogTypeStructured,
		SessionTitle: title,
		Duration:     60,
		Date:         date,
		CreatedAt:    time.Now(),
	}
}

func TestPracticeLogRoundTrip(t *testing.T) {
	conn := newTestDB(t)
	user := createTestUser(t, conn, "golfer@example.com")
	repo := NewPracticeLogRepository(conn)

	rating := 4
	entry := testLog(user.ID, "Putting session", time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC))
	entry.Rating = &rating
	entry.Notes = "Gates felt good"
	entry.Drills = []model.LogDrill{
		{Name: "Gate drill", Duration: "20 mins", Notes: "8/10"},
		{Name: "Lag ladder"},
	}
	require.NoError(t, repo.Create(entry))

	logs, err := repo.Logs(user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	got := logs[0]
	assert.Equal(t, "Putting session", got.SessionTitle)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)
	require.Len(t, got.Drills, 2)
	assert.Equal(t, "Gate drill", got.Drills[0].Name)
	assert.Empty(t, got.Categories)
}

func TestPracticeLog_ActivityCategories(t *testing.T) {
	conn := newTestDB(t)
	user := createTestUser(t, conn, "golfer@example.com")
	repo := NewPracticeLogRepository(conn)

	entry := testLog(user.ID, "Gym session", time.Now())
	entry.Type = model.LogTypeActivity
	entry.Categories = []string{"strength", "mobility"}
	require.NoError(t, repo.Create(entry))

	logs, err := repo.Logs(user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, []string{"strength", "mobility"}, logs[0].Categories)
	assert.Empty(t, logs[0].Drills)
}

// LogsBetween is inclusive of the bounds, which is what the monthly recap
// window relies on.
func TestLogsBetween(t *testing.T) {
	conn := newTestDB(t)
	user := createTestUser(t, conn, "golfer@example.com")
	repo := NewPracticeLogRepository(conn)

	june1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	june30 := time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC)
	may31 := time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)
	july1 := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	for _, d := range []time.Time{june1, june30, may31, july1} {
		require.NoError(t, repo.Create(testLog(user.ID, "Session", d)))
	}

	from := june1
	to := time.Date(2025, 6, 30, 23, 59, 59, 999999999, time.UTC)

	logs, err := repo.LogsBetween(user.ID, from, to)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestLogs_NewestFirst(t *testing.T) {
	conn := newTestDB(t)
	user := createTestUser(t, conn, "golfer@example.com")
	repo := NewPracticeLogRepository(conn)

	require.NoError(t, repo.Create(testLog(user.ID, "Older", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Create(testLog(user.ID, "Newer", time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC))))

	logs, err := repo.Logs(user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "Newer", logs[0].SessionTitle)
}
