package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/yoockh/jobtrail/internal/models"
	"github.com/yoockh/jobtrail/internal/utils"
	"gorm.io/gorm"
)

// ApplicationFilter narrows List results. Zero values mean "no filter".
type ApplicationFilter struct {
	Status    models.ApplicationStatus
	CompanyID string
	Search    string // matches job_title, case-insensitive substring
	Starred   *bool
	Archived  *bool
	Limit     int
	Offset    int
}

type ApplicationRepository interface {
	CreateWithHistory(ctx context.Context, app *models.JobApplication, first *models.StatusHistory) error
	GetOwned(ctx context.Context, userID, id string) (*models.JobApplication, error)
	List(ctx context.Context, userID string, f ApplicationFilter) ([]models.JobApplication, error)
	Save(ctx context.Context, app *models.JobApplication) error
	UpdateStatusWithHistory(ctx context.Context, app *models.JobApplication, entry *models.StatusHistory) error
	DeleteCascade(ctx context.Context, id string) error
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

// CreateWithHistory inserts the application together with its initial
// ledger row. An application without a creation history entry must
// never be observable, so both inserts share one transaction.
func (r *applicationRepo) CreateWithHistory(ctx context.Context, app *models.JobApplication, first *models.StatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		return tx.Create(first).Error
	})
}

func (r *applicationRepo) GetOwned(ctx context.Context, userID, id string) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) List(ctx context.Context, userID string, f ApplicationFilter) ([]models.JobApplication, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CompanyID != "" {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if f.Search != "" {
		q = q.Where("LOWER(job_title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Starred != nil {
		q = q.Where("is_starred = ?", *f.Starred)
	}
	if f.Archived != nil {
		q = q.Where("is_archived = ?", *f.Archived)
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows []models.JobApplication
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(f.Offset).
		Find(&rows).Error
	return rows, err
}

func (r *applicationRepo) Save(ctx context.Context, app *models.JobApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// UpdateStatusWithHistory commits a real status transition: the live
// status write and the ledger append are one atomic unit, so the
// newest ledger row's to_status can never drift from the aggregate.
func (r *applicationRepo) UpdateStatusWithHistory(ctx context.Context, app *models.JobApplication, entry *models.StatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.JobApplication{}).
			Where("id = ?", app.ID).
			Updates(map[string]any{
				"status":     app.Status,
				"updated_at": app.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return tx.Create(entry).Error
	})
}

// DeleteCascade removes the application and every row that exists only
// because of it, children first, all inside one transaction. The
// postgres schema cannot rely on ON DELETE CASCADE for all of these
// tables, so the ordering is spelled out here.
func (r *applicationRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteApplicationChildren(tx, id)
	})
}

// deleteApplicationChildren runs inside an open transaction; it is
// shared with the company and user cascades, which delete several
// applications in a single unit.
func deleteApplicationChildren(tx *gorm.DB, id string) error {
	if err := tx.Where("job_application_id = ?", id).
		Delete(&models.StatusHistory{}).Error; err != nil {
		return err
	}
	if err := tx.Where("job_application_id = ?", id).
		Delete(&models.ApplicationKeyword{}).Error; err != nil {
		return err
	}
	// hard delete, not the usual is_active soft delete: these documents
	// exist only because of the application
	if err := tx.Where("job_application_id = ?", id).
		Delete(&models.Document{}).Error; err != nil {
		return err
	}
	res := tx.Where("id = ?", id).Delete(&models.JobApplication{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
