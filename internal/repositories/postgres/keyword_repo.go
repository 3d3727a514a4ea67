package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/jobtrail/internal/models"
	"github.com/yoockh/jobtrail/internal/utils"
	"gorm.io/gorm"
)

// ApplicationKeywordView joins a link row with its keyword for listing.
type ApplicationKeywordView struct {
	Link    models.ApplicationKeyword `json:"link"`
	Keyword models.Keyword            `json:"keyword"`
}

type KeywordRepository interface {
	Insert(ctx context.Context, k *models.Keyword) error
	GetByID(ctx context.Context, id string) (*models.Keyword, error)
	List(ctx context.Context) ([]models.Keyword, error)
	Attach(ctx context.Context, link *models.ApplicationKeyword) error
	Detach(ctx context.Context, applicationID, keywordID string) error
	ListForApplication(ctx context.Context, applicationID string) ([]ApplicationKeywordView, error)
}

type keywordRepo struct {
	db *gorm.DB
}

func NewKeywordRepo(db *gorm.DB) KeywordRepository {
	return &keywordRepo{db: db}
}

func (r *keywordRepo) Insert(ctx context.Context, k *models.Keyword) error {
	err := r.db.WithContext(ctx).Create(k).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	return err
}

func (r *keywordRepo) GetByID(ctx context.Context, id string) (*models.Keyword, error) {
	var k models.Keyword
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *keywordRepo) List(ctx context.Context) ([]models.Keyword, error) {
	var rows []models.Keyword
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *keywordRepo) Attach(ctx context.Context, link *models.ApplicationKeyword) error {
	err := r.db.WithContext(ctx).Create(link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	return err
}

func (r *keywordRepo) Detach(ctx context.Context, applicationID, keywordID string) error {
	res := r.db.WithContext(ctx).
		Where("job_application_id = ? AND keyword_id = ?", applicationID, keywordID).
		Delete(&models.ApplicationKeyword{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *keywordRepo) ListForApplication(ctx context.Context, applicationID string) ([]ApplicationKeywordView, error) {
	var links []models.ApplicationKeyword
	err := r.db.WithContext(ctx).
		Where("job_application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	out := make([]ApplicationKeywordView, 0, len(links))
	for _, link := range links {
		var k models.Keyword
		if err := r.db.WithContext(ctx).Where("id = ?", link.KeywordID).Take(&k).Error; err != nil {
			return nil, err
		}
		out = append(out, ApplicationKeywordView{Link: link, Keyword: k})
	}
	return out, nil
}
