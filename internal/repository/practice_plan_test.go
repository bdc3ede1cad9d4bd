package repository

import (
	"testing"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPracticePlanRoundTrip(t *testing.T) {
	conn := newTestDB(t)
	user := createTestUser(t, conn, "golfer@example.com")
	repo := NewPracticePlanRepository(conn)

	plan := &model.PracticePlan{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		Title:          "Short Game Sharpening",
		Description:    "Three weeks of wedge work",
		TimePerSession: 60,
		AIGenerated:    true,
		StartDate:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		CreatedAt:      time.Now(),
		Sessions: []model.PlanSession{
			{
				Day:      "Monday",
				Focus:    "Putting",
				Duration: "60 mins",
				Location: "Practice green",
				Warmup:   "10 short putts",
				Drills: []model.PlanDrill{
					{
						Name:        "Gate drill",
						Duration:    "20 mins",
						Description: "Putt through a tee gate from 6 feet",
						Goal:        "8 of 10 through the gate",
						KeyThought:  "Square face at impact",
					},
				},
			},
			{Day: "Thursday", Focus: "Chipping", Duration: "45 mins"},
		},
	}
	require.NoError(t, repo.Create(plan))

	got, err := repo.ByID(user.ID, plan.ID)
	require.NoError(t, err)

	assert.Equal(t, plan.Title, got.Title)
	assert.True(t, got.AIGenerated)
	require.Len(t, got.Sessions, 2)
	assert.Equal(t, "Monday", got.Sessions[0].Day)
	assert.Equal(t, "Practice green", got.Sessions[0].Location)
	require.Len(t, got.Sessions[0].Drills, 1)
	assert.Equal(t, "Gate drill", got.Sessions[0].Drills[0].Name)
	assert.Equal(t, "Square face at impact", got.Sessions[0].Drills[0].KeyThought)
	assert.Empty(t, got.Sessions[1].Drills)
}

// Plans are scoped to their owner.
func TestPracticePlanByID_WrongUser(t *testing.T) {
	conn := newTestDB(t)
	owner := createTestUser(t, conn, "owner@example.com")
	other := createTestUser(t, conn, "other@example.com")
	repo := NewPracticePlanRepository(conn)

	plan := &model.PracticePlan{
		ID:        uuid.New().String(),
		UserID:    owner.ID,
		Title:     "Private plan",
		StartDate: time.Now(),
		EndDate:   time.Now(),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(plan))

	_, err := repo.ByID(other.ID, plan.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPracticePlans_NewestFirst(t *testing.T) {
	conn := newTestDB(t)
	user := createTestUser(t, conn, "golfer@example.com")
	repo := NewPracticePlanRepository(conn)

	older := &model.PracticePlan{
		ID: uuid.New().String(), UserID: user.ID, Title: "Older",
		StartDate: time.Now(), EndDate: time.Now(),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := &model.PracticePlan{
		ID: uuid.New().String(), UserID: user.ID, Title: "Newer",
		StartDate: time.Now(), EndDate: time.Now(),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))

	plans, err := repo.Plans(user.ID)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Newer", plans[0].Title)
}
