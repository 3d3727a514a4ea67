package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/yoockh/jobtrail/internal/models"
	"github.com/yoockh/jobtrail/internal/utils"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Insert(ctx context.Context, c *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	GetByName(ctx context.Context, name string) (*models.Company, error)
	List(ctx context.Context, limit, offset int) ([]models.Company, error)
	Save(ctx context.Context, c *models.Company) error
	DeleteCascade(ctx context.Context, id string) error
}

type companyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Insert(ctx context.Context, c *models.Company) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	return err
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByName is case-insensitive; "Acme" and "acme" are the same company.
func (r *companyRepo) GetByName(ctx context.Context, name string) (*models.Company, error) {
	var c models.Company
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) List(ctx context.Context, limit, offset int) ([]models.Company, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var rows []models.Company
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *companyRepo) Save(ctx context.Context, c *models.Company) error {
	err := r.db.WithContext(ctx).Save(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	return err
}

// DeleteCascade removes the company and, by policy, every application
// referencing it, each with its own child rows, in one transaction.
func (r *companyRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appIDs []string
		if err := tx.Model(&models.JobApplication{}).
			Where("company_id = ?", id).
			Pluck("id", &appIDs).Error; err != nil {
			return err
		}
		for _, appID := range appIDs {
			if err := deleteApplicationChildren(tx, appID); err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&models.Company{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
}
