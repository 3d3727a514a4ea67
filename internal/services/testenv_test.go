package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobtrail/internal/models"
	pgrepo "github.com/yoockh/jobtrail/internal/repositories/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	apps      pgrepo.ApplicationRepository
	history   pgrepo.HistoryRepository
	companies pgrepo.CompanyRepository
	users     pgrepo.UserRepository
	keywords  pgrepo.KeywordRepository
	stats     pgrepo.StatsRepository

	user    *models.User
	company *models.Company
}

func newTestEnv(t *testing.T) *testEnv {
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

	now := time.Now().UTC()
	user := &models.User{
		ID: uuid.NewString(), Email: "me@example.com", Role: models.RoleUser,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Create(user).Error)

	company := &models.Company{
		ID: uuid.NewString(), Name: "Acme", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Create(company).Error)

	return &testEnv{
		db:        db,
		apps:      pgrepo.NewApplicationRepo(db),
		history:   pgrepo.NewHistoryRepo(db),
		companies: pgrepo.NewCompanyRepo(db),
		users:     pgrepo.NewUserRepo(db),
		keywords:  pgrepo.NewKeywordRepo(db),
		stats:     pgrepo.NewStatsRepo(db),
		user:      user,
		company:   company,
	}
}

func (e *testEnv) appService() ApplicationService {
	return NewApplicationService(e.apps, e.history, e.companies, nil)
}

func (e *testEnv) historyRows(t *testing.T, appID string) []models.StatusHistory {
	t.Helper()
	rows, err := e.history.ListByApplication(context.Background(), appID)
	require.NoError(t, err)
	return rows
}

// fakeCache records operations so tests can assert invalidation.
type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	return false, nil
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	c.store[key] = []byte("set")
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.dels = append(c.dels, keys...)
	return nil
}
