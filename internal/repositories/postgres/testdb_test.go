package postgres

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobtrail/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory database with the full schema.
// The DSN embeds the test name so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.JobApplication{},
		&models.StatusHistory{},
		&models.Document{},
		&models.Keyword{},
		&models.ApplicationKeyword{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	u := &models.User{
		ID:        uuid.NewString(),
		Email:     uuid.NewString() + "@example.com",
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedCompany(t *testing.T, db *gorm.DB, name string) *models.Company {
	t.Helper()
	c := &models.Company{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedApplication(t *testing.T, db *gorm.DB, userID, companyID string, status models.ApplicationStatus) *models.JobApplication {
	t.Helper()
	now := time.Now().UTC()
	app := &models.JobApplication{
		ID:        uuid.NewString(),
		UserID:    userID,
		CompanyID: companyID,
		JobTitle:  "Backend Engineer",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(app).Error)
	require.NoError(t, db.Create(&models.StatusHistory{
		ID:               uuid.NewString(),
		JobApplicationID: app.ID,
		ToStatus:         status,
		ChangedBy:        models.ChangedByUser,
		CreatedAt:        now,
	}).Error)
	return app
}
