package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/yoockh/jobtrail/internal/models"
	pgrepo "github.com/yoockh/jobtrail/internal/repositories/postgres"
	"github.com/yoockh/jobtrail/internal/utils"
)

type AttachKeywordInput struct {
	KeywordID     string
	IsRequired    bool
	IsPreferred   bool
	YearsRequired int
	YearsHave     int
	LevelRequired int
	LevelHave     int
}

type KeywordService interface {
	Create(ctx context.Context, name, category string, aliases []string) (*models.Keyword, error)
	List(ctx context.Context) ([]models.Keyword, error)
	Attach(ctx context.Context, userID, applicationID string, in AttachKeywordInput) (*models.ApplicationKeyword, error)
	Detach(ctx context.Context, userID, applicationID, keywordID string) error
	ListForApplication(ctx context.Context, userID, applicationID string) ([]pgrepo.ApplicationKeywordView, error)
}

type keywordService struct {
	keywords pgrepo.KeywordRepository
	apps     pgrepo.ApplicationRepository
	now      func() time.Time
}

func NewKeywordService(keywords pgrepo.KeywordRepository, apps pgrepo.ApplicationRepository) KeywordService {
	return &keywordService{
		keywords: keywords,
		apps:     apps,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *keywordService) Create(ctx context.Context, name, category string, aliases []string) (*models.Keyword, error) {
	const op = "KeywordService.Create"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}

	k := &models.Keyword{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		Aliases:   pq.StringArray(aliases),
		CreatedAt: s.now(),
	}
	if err := s.keywords.Insert(ctx, k); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "keyword already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create keyword", err)
	}
	return k, nil
}

func (s *keywordService) List(ctx context.Context) ([]models.Keyword, error) {
	const op = "KeywordService.List"

	rows, err := s.keywords.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list keywords", err)
	}
	return rows, nil
}

func (s *keywordService) Attach(ctx context.Context, userID, applicationID string, in AttachKeywordInput) (*models.ApplicationKeyword, error) {
	const op = "KeywordService.Attach"

	if _, err := s.apps.GetOwned(ctx, userID, applicationID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to resolve application", err)
	}
	if _, err := s.keywords.GetByID(ctx, in.KeywordID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "keyword not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to resolve keyword", err)
	}

	link := &models.ApplicationKeyword{
		ID:               uuid.NewString(),
		JobApplicationID: applicationID,
		KeywordID:        in.KeywordID,
		IsRequired:       in.IsRequired,
		IsPreferred:      in.IsPreferred,
		YearsRequired:    in.YearsRequired,
		YearsHave:        in.YearsHave,
		LevelRequired:    in.LevelRequired,
		LevelHave:        in.LevelHave,
		CreatedAt:        s.now(),
	}
	link.GapScore = link.ComputeGapScore()

	if err := s.keywords.Attach(ctx, link); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "keyword already attached", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to attach keyword", err)
	}
	return link, nil
}

func (s *keywordService) Detach(ctx context.Context, userID, applicationID, keywordID string) error {
	const op = "KeywordService.Detach"

	if _, err := s.apps.GetOwned(ctx, userID, applicationID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to resolve application", err)
	}
	if err := s.keywords.Detach(ctx, applicationID, keywordID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "keyword link not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to detach keyword", err)
	}
	return nil
}

func (s *keywordService) ListForApplication(ctx context.Context, userID, applicationID string) ([]pgrepo.ApplicationKeywordView, error) {
	const op = "KeywordService.ListForApplication"

	if _, err := s.apps.GetOwned(ctx, userID, applicationID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to resolve application", err)
	}
	rows, err := s.keywords.ListForApplication(ctx, applicationID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list application keywords", err)
	}
	return rows, nil
}
