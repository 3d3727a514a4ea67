package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobtrail/internal/models"
)

func TestResponseRate(t *testing.T) {
	assert.Equal(t, float64(0), responseRate(0, 0), "zero applied must be 0, not NaN")
	assert.Equal(t, float64(0), responseRate(5, 0))
	assert.Equal(t, 50.0, responseRate(1, 2))
	assert.Equal(t, 66.7, responseRate(2, 3))
	assert.Equal(t, 100.0, responseRate(3, 3))
	assert.Equal(t, 33.3, responseRate(1, 3))
}

func seedApp(t *testing.T, env *testEnv, status models.ApplicationStatus, createdAt time.Time, followUp *time.Time) *models.JobApplication {
	t.Helper()
	app := &models.JobApplication{
		ID:         uuid.NewString(),
		UserID:     env.user.ID,
		CompanyID:  env.company.ID,
		JobTitle:   "Backend Engineer",
		Status:     status,
		FollowUpAt: followUp,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	require.NoError(t, env.db.Create(app).Error)
	return app
}

func TestOverviewEmpty(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStatsService(env.stats, nil)

	out, err := svc.Overview(context.Background(), env.user.ID)
	require.NoError(t, err)
	assert.Zero(t, out.TotalApplications)
	assert.Equal(t, float64(0), out.ResponseRate)
	assert.Len(t, out.StatusDistribution, 14, "all statuses reported, zeros included")
	for st, n := range out.StatusDistribution {
		assert.Zero(t, n, "status %q", st)
	}
}

func TestOverviewCounts(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStatsService(env.stats, nil)
	now := time.Now().UTC()

	tomorrow := now.AddDate(0, 0, 1)
	yesterday := now.AddDate(0, 0, -1)

	// 1 interested (not yet applied), 3 applied-or-later of which 1 responded
	seedApp(t, env, models.StatusInterested, now.AddDate(0, 0, -40), nil)
	seedApp(t, env, models.StatusApplied, now.AddDate(0, 0, -10), &tomorrow)
	seedApp(t, env, models.StatusPhoneScreening, now.AddDate(0, 0, -5), &yesterday)
	seedApp(t, env, models.StatusRejected, now.AddDate(0, 0, -2), &tomorrow) // closed: no follow-up

	out, err := svc.Overview(context.Background(), env.user.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 4, out.TotalApplications)
	assert.EqualValues(t, 3, out.RecentApplications, "one application is older than 30 days")
	assert.EqualValues(t, 1, out.UpcomingFollowUps,
		"past follow-ups and closed applications do not count")
	assert.Equal(t, 33.3, out.ResponseRate, "1 responded of 3 applied")

	assert.EqualValues(t, 1, out.StatusDistribution[models.StatusInterested])
	assert.EqualValues(t, 1, out.StatusDistribution[models.StatusApplied])
	assert.EqualValues(t, 1, out.StatusDistribution[models.StatusPhoneScreening])
	assert.EqualValues(t, 1, out.StatusDistribution[models.StatusRejected])
	assert.EqualValues(t, 0, out.StatusDistribution[models.StatusOfferAccepted])
}

func TestOverviewScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStatsService(env.stats, nil)
	now := time.Now().UTC()

	seedApp(t, env, models.StatusApplied, now, nil)

	other := &models.User{ID: uuid.NewString(), Email: "other@example.com", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, env.db.Create(other).Error)

	out, err := svc.Overview(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Zero(t, out.TotalApplications)
}

func historyRow(appID string, from *models.ApplicationStatus, to models.ApplicationStatus, at time.Time) models.StatusHistory {
	return models.StatusHistory{
		ID:               uuid.NewString(),
		JobApplicationID: appID,
		FromStatus:       from,
		ToStatus:         to,
		ChangedBy:        models.ChangedByUser,
		CreatedAt:        at,
	}
}

func TestAverageTimeInStatusAggregation(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	applied := models.StatusApplied
	interested := models.StatusInterested

	appA := "app-a"
	appB := "app-b"
	rows := []models.StatusHistory{
		// app A: Interested (2d) -> Applied (3d) -> Phone Screening (open)
		historyRow(appA, nil, models.StatusInterested, base),
		historyRow(appA, &interested, models.StatusApplied, base.AddDate(0, 0, 2)),
		historyRow(appA, &applied, models.StatusPhoneScreening, base.AddDate(0, 0, 5)),
		// app B: Interested (4d) -> Applied (open)
		historyRow(appB, nil, models.StatusInterested, base),
		historyRow(appB, &interested, models.StatusApplied, base.AddDate(0, 0, 4)),
	}

	pairs := averageTimeInStatus(rows)
	require.Len(t, pairs, 2)

	byPair := map[[2]models.ApplicationStatus]StatusPairAverage{}
	for _, p := range pairs {
		byPair[[2]models.ApplicationStatus{p.FromStatus, p.ToStatus}] = p
	}

	ia := byPair[[2]models.ApplicationStatus{models.StatusInterested, models.StatusApplied}]
	assert.Equal(t, 3.0, ia.AvgDays, "(2d + 4d) / 2 samples")
	assert.Equal(t, 2, ia.Samples)

	ap := byPair[[2]models.ApplicationStatus{models.StatusApplied, models.StatusPhoneScreening}]
	assert.Equal(t, 3.0, ap.AvgDays)
	assert.Equal(t, 1, ap.Samples)
}

func TestAverageTimeInStatusOpenStatesExcluded(t *testing.T) {
	base := time.Now().UTC()
	rows := []models.StatusHistory{
		historyRow("solo", nil, models.StatusInterested, base),
	}
	assert.Empty(t, averageTimeInStatus(rows),
		"an application still in its first status contributes nothing")
}

func TestAverageTimeInStatusViaStore(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStatsService(env.stats, nil)
	base := time.Now().UTC().AddDate(0, 0, -10)

	app := seedApp(t, env, models.StatusApplied, base, nil)
	interested := models.StatusInterested
	require.NoError(t, env.db.Create(&models.StatusHistory{
		ID: uuid.NewString(), JobApplicationID: app.ID,
		ToStatus: models.StatusInterested, ChangedBy: models.ChangedByUser, CreatedAt: base,
	}).Error)
	require.NoError(t, env.db.Create(&models.StatusHistory{
		ID: uuid.NewString(), JobApplicationID: app.ID,
		FromStatus: &interested, ToStatus: models.StatusApplied,
		ChangedBy: models.ChangedByUser, CreatedAt: base.AddDate(0, 0, 6),
	}).Error)

	pairs, err := svc.AverageTimeInStatus(context.Background(), env.user.ID)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, models.StatusInterested, pairs[0].FromStatus)
	assert.Equal(t, models.StatusApplied, pairs[0].ToStatus)
	assert.Equal(t, 6.0, pairs[0].AvgDays)
}

func TestOverviewPopulatesCache(t *testing.T) {
	env := newTestEnv(t)
	fc := newFakeCache()
	svc := NewStatsService(env.stats, fc)

	_, err := svc.Overview(context.Background(), env.user.ID)
	require.NoError(t, err)
	assert.Contains(t, fc.store, statsOverviewKey(env.user.ID))
}
