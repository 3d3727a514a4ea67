package postgres

import (
	"context"

	"github.com/yoockh/jobtrail/internal/models"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	ListByApplication(ctx context.Context, applicationID string) ([]models.StatusHistory, error)
	Latest(ctx context.Context, applicationID string) (*models.StatusHistory, error)
	CountByApplication(ctx context.Context, applicationID string) (int64, error)
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db: db}
}

// ListByApplication returns the ledger oldest-first. The id tiebreak
// keeps the order stable when two rows share a timestamp.
func (r *historyRepo) ListByApplication(ctx context.Context, applicationID string) ([]models.StatusHistory, error) {
	var rows []models.StatusHistory
	err := r.db.WithContext(ctx).
		Where("job_application_id = ?", applicationID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *historyRepo) Latest(ctx context.Context, applicationID string) (*models.StatusHistory, error) {
	var row models.StatusHistory
	err := r.db.WithContext(ctx).
		Where("job_application_id = ?", applicationID).
		Order("created_at DESC, id DESC").
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *historyRepo) CountByApplication(ctx context.Context, applicationID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.StatusHistory{}).
		Where("job_application_id = ?", applicationID).
		Count(&n).Error
	return n, err
}
