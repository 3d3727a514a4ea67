package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/jobtrail/internal/models"
	"github.com/yoockh/jobtrail/internal/utils"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Insert(ctx context.Context, d *models.Document) error
	GetOwned(ctx context.Context, userID, id string) (*models.Document, error)
	ListByUser(ctx context.Context, userID string, activeOnly bool) ([]models.Document, error)
	ListByApplication(ctx context.Context, applicationID string) ([]models.Document, error)
	SoftDelete(ctx context.Context, userID, id string) error
}

type documentRepo struct {
	db *gorm.DB
}

func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Insert(ctx context.Context, d *models.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *documentRepo) GetOwned(ctx context.Context, userID, id string) (*models.Document, error) {
	var d models.Document
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepo) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]models.Document, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []models.Document
	err := q.Order("uploaded_at DESC").Find(&rows).Error
	return rows, err
}

func (r *documentRepo) ListByApplication(ctx context.Context, applicationID string) ([]models.Document, error) {
	var rows []models.Document
	err := r.db.WithContext(ctx).
		Where("job_application_id = ?", applicationID).
		Order("uploaded_at DESC").
		Find(&rows).Error
	return rows, err
}

// SoftDelete flips is_active off; the row and the stored object stay.
func (r *documentRepo) SoftDelete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Document{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
