package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobtrail/internal/models"
	"github.com/yoockh/jobtrail/internal/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.users, "test-secret")
	ctx := context.Background()

	u, err := svc.Register(ctx, "New@Example.com", "hunter2hunter2", "New User")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email, "email is normalized")
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)

	token, got, err := svc.Login(ctx, "new@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, got.ID)

	_, _, err = svc.Login(ctx, "new@example.com", "wrong-password")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized),
		"unknown email reads the same as a bad password")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.users, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "hunter2hunter2", "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Register(ctx, "a@b.com", "short", "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.users, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup@example.com", "hunter2hunter2", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "hunter2hunter2", "")
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestDeleteAccountCascades(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, "test-secret")
	apps := env.appService()
	ctx := context.Background()

	app, err := apps.Create(ctx, env.user.ID, CreateApplicationInput{
		CompanyID: env.company.ID, JobTitle: "Backend Engineer",
	})
	require.NoError(t, err)

	require.NoError(t, auth.DeleteAccount(ctx, env.user.ID))

	var n int64
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", env.user.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, env.db.Model(&models.JobApplication{}).Where("id = ?", app.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, env.db.Model(&models.StatusHistory{}).Where("job_application_id = ?", app.ID).Count(&n).Error)
	assert.Zero(t, n)
}
