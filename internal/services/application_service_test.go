package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobtrail/internal/models"
	"github.com/yoockh/jobtrail/internal/utils"
)

func TestCreateDefaultsToInterested(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()
	ctx := context.Background()

	app, err := svc.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID,
		JobTitle:  "Backend Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterested, app.Status)

	rows := env.historyRows(t, app.ID)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].FromStatus)
	assert.Equal(t, models.StatusInterested, rows[0].ToStatus)
	assert.Equal(t, models.ChangedByUser, rows[0].ChangedBy)
}

func TestCreateValidationWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()
	ctx := context.Background()

	lo, hi := int64(100000), int64(80000)
	cases := []CreateApplicationInput{
		{CompanyID: env.company.ID, JobTitle: "x"},                                      // too short
		{CompanyID: env.company.ID, JobTitle: strings.Repeat("a", 101)},                 // too long
		{CompanyID: env.company.ID, JobTitle: "Engineer", SalaryMin: &lo, SalaryMax: &hi}, // min > max
		{CompanyID: env.company.ID, JobTitle: "Engineer", Status: "Ghosted"},            // unknown status
	}
	for _, in := range cases {
		_, err := svc.Create(ctx, env.user.ID, in)
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument), "input %+v: got %v", in, err)
	}

	var apps, hist int64
	require.NoError(t, env.db.Model(&models.JobApplication{}).Count(&apps).Error)
	require.NoError(t, env.db.Model(&models.StatusHistory{}).Count(&hist).Error)
	assert.Zero(t, apps)
	assert.Zero(t, hist)
}

func TestCreateUnknownCompany(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()

	_, err := svc.Create(context.Background(), env.user.ID, CreateApplicationInput{
		CompanyID: "00000000-0000-0000-0000-000000000000",
		JobTitle:  "Backend Engineer",
	})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestUpdateStatusNoOpWritesNoHistory(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()
	ctx := context.Background()

	app, err := svc.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID, JobTitle: "Backend Engineer", Status: models.StatusApplied,
	})
	require.NoError(t, err)
	require.Len(t, env.historyRows(t, app.ID), 1)

	got, err := svc.UpdateStatus(ctx, env.user.ID, app.ID, models.StatusApplied, models.ChangedByUser, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, got.Status)
	assert.Len(t, env.historyRows(t, app.ID), 1, "no-op transition must not append to the ledger")
}

func TestStatusLifecycleScenario(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()
	ctx := context.Background()

	app, err := svc.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID, JobTitle: "Backend Engineer",
	})
	require.NoError(t, err)

	rows := env.historyRows(t, app.ID)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].FromStatus)
	assert.Equal(t, models.StatusInterested, rows[0].ToStatus)

	got, err := svc.UpdateStatus(ctx, env.user.ID, app.ID, models.StatusApplied, models.ChangedByUser, "sent it")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, got.Status)

	rows = env.historyRows(t, app.ID)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[1].FromStatus)
	assert.Equal(t, models.StatusInterested, *rows[1].FromStatus)
	assert.Equal(t, models.StatusApplied, rows[1].ToStatus)
	assert.Equal(t, "sent it", rows[1].Notes)

	require.NoError(t, svc.Delete(ctx, env.user.ID, app.ID))

	assert.Empty(t, env.historyRows(t, app.ID))
	_, err = svc.Get(ctx, env.user.ID, app.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestLedgerMatchesLiveStatusAfterAnySequence(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()
	ctx := context.Background()

	app, err := svc.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID, JobTitle: "Backend Engineer",
	})
	require.NoError(t, err)

	sequence := []models.ApplicationStatus{
		models.StatusApplied,
		models.StatusApplied, // no-op
		models.StatusPhoneScreening,
		models.StatusOnHold,
		models.StatusTechnicalInterview,
		models.StatusRejected,
	}
	for _, st := range sequence {
		_, err := svc.UpdateStatus(ctx, env.user.ID, app.ID, st, models.ChangedBySystem, "")
		require.NoError(t, err)

		live, err := svc.Get(ctx, env.user.ID, app.ID)
		require.NoError(t, err)

		rows := env.historyRows(t, app.ID)
		require.NotEmpty(t, rows)
		assert.Equal(t, live.Status, rows[len(rows)-1].ToStatus,
			"newest ledger row must match the live status")
	}

	// 5 real transitions plus the creation row; the no-op wrote nothing
	assert.Len(t, env.historyRows(t, app.ID), 6)
}

func TestUpdatePatchTriggersTransition(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()
	ctx := context.Background()

	app, err := svc.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID, JobTitle: "Backend Engineer",
	})
	require.NoError(t, err)

	title := "Senior Backend Engineer"
	status := models.StatusApplied
	starred := true
	got, err := svc.Update(ctx, env.user.ID, app.ID, UpdateApplicationInput{
		JobTitle:  &title,
		Status:    &status,
		IsStarred: &starred,
	})
	require.NoError(t, err)
	assert.Equal(t, title, got.JobTitle)
	assert.Equal(t, models.StatusApplied, got.Status)
	assert.True(t, got.IsStarred)

	rows := env.historyRows(t, app.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, models.StatusApplied, rows[1].ToStatus)

	// patching without a status change leaves the ledger alone
	notes := "hiring manager pinged me"
	_, err = svc.Update(ctx, env.user.ID, app.ID, UpdateApplicationInput{Notes: &notes})
	require.NoError(t, err)
	assert.Len(t, env.historyRows(t, app.ID), 2)
}

func TestUpdateSalaryRangeValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()
	ctx := context.Background()

	lo := int64(50000)
	app, err := svc.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID, JobTitle: "Backend Engineer", SalaryMin: &lo,
	})
	require.NoError(t, err)

	bad := int64(40000)
	_, err = svc.Update(ctx, env.user.ID, app.ID, UpdateApplicationInput{SalaryMax: &bad})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument),
		"patched max below existing min must fail")
}

func TestUpdateUnknownStatusWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()
	ctx := context.Background()

	app, err := svc.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID, JobTitle: "Backend Engineer",
	})
	require.NoError(t, err)

	title := "Staff Engineer"
	ghost := models.ApplicationStatus("Ghosted")
	_, err = svc.Update(ctx, env.user.ID, app.ID, UpdateApplicationInput{
		JobTitle: &title,
		Status:   &ghost,
	})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	got, err := svc.Get(ctx, env.user.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.JobTitle,
		"a rejected patch must not commit any field")
	assert.Len(t, env.historyRows(t, app.ID), 1)
}

func TestOperationsScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()
	ctx := context.Background()

	app, err := svc.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID, JobTitle: "Backend Engineer",
	})
	require.NoError(t, err)

	stranger := "11111111-1111-1111-1111-111111111111"

	_, err = svc.Get(ctx, stranger, app.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = svc.UpdateStatus(ctx, stranger, app.ID, models.StatusApplied, models.ChangedByUser, "")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	err = svc.Delete(ctx, stranger, app.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = svc.Timeline(ctx, stranger, app.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	// still there for the owner
	_, err = svc.Get(ctx, env.user.ID, app.ID)
	require.NoError(t, err)
}

func TestTimelineAnnotations(t *testing.T) {
	env := newTestEnv(t)
	svc := env.appService()
	ctx := context.Background()

	app, err := svc.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID, JobTitle: "Backend Engineer",
	})
	require.NoError(t, err)

	for _, st := range []models.ApplicationStatus{models.StatusApplied, models.StatusRejected} {
		_, err := svc.UpdateStatus(ctx, env.user.ID, app.ID, st, models.ChangedByUser, "")
		require.NoError(t, err)
	}

	entries, err := svc.Timeline(ctx, env.user.ID, app.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, models.TransitionPositive, entries[0].Kind)
	assert.Equal(t, models.TransitionPositive, entries[1].Kind)
	assert.Equal(t, models.TransitionNegative, entries[2].Kind)
	for _, e := range entries {
		assert.GreaterOrEqual(t, e.DaysElapsed, 0)
	}
}

func TestMutationsInvalidateStatsCache(t *testing.T) {
	env := newTestEnv(t)
	fc := newFakeCache()
	svc := NewApplicationService(env.apps, env.history, env.companies, fc)
	ctx := context.Background()

	app, err := svc.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID, JobTitle: "Backend Engineer",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, env.user.ID, app.ID, models.StatusApplied, models.ChangedByUser, "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, env.user.ID, app.ID))

	key := statsOverviewKey(env.user.ID)
	assert.GreaterOrEqual(t, len(fc.dels), 3)
	for _, k := range fc.dels {
		assert.Equal(t, key, k)
	}
}
