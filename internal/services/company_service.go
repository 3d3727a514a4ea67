package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobtrail/internal/models"
	pgrepo "github.com/yoockh/jobtrail/internal/repositories/postgres"
	"github.com/yoockh/jobtrail/internal/utils"
	"gorm.io/datatypes"
)

type CompanyInput struct {
	Name     string
	Website  string
	Industry string
	Location string
	Notes    string
	Profile  datatypes.JSON
}

type CompanyService interface {
	Create(ctx context.Context, in CompanyInput) (*models.Company, error)
	Get(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context, limit, offset int) ([]models.Company, error)
	Update(ctx context.Context, id string, in CompanyInput) (*models.Company, error)
	Delete(ctx context.Context, id string) error
}

type companyService struct {
	companies pgrepo.CompanyRepository
	now       func() time.Time
}

func NewCompanyService(companies pgrepo.CompanyRepository) CompanyService {
	return &companyService{
		companies: companies,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *companyService) Create(ctx context.Context, in CompanyInput) (*models.Company, error) {
	const op = "CompanyService.Create"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}

	// names are unique ignoring case; the DB index alone is
	// case-sensitive, so check explicitly first
	if _, err := s.companies.GetByName(ctx, name); err == nil {
		return nil, utils.E(utils.CodeConflict, op, "company name already exists", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check company name", err)
	}

	now := s.now()
	c := &models.Company{
		ID:        uuid.NewString(),
		Name:      name,
		Website:   in.Website,
		Industry:  in.Industry,
		Location:  in.Location,
		Notes:     in.Notes,
		Profile:   in.Profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.companies.Insert(ctx, c); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "company name already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create company", err)
	}
	return c, nil
}

func (s *companyService) Get(ctx context.Context, id string) (*models.Company, error) {
	const op = "CompanyService.Get"

	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "company not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get company", err)
	}
	return c, nil
}

func (s *companyService) List(ctx context.Context, limit, offset int) ([]models.Company, error) {
	const op = "CompanyService.List"

	rows, err := s.companies.List(ctx, limit, offset)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list companies", err)
	}
	return rows, nil
}

func (s *companyService) Update(ctx context.Context, id string, in CompanyInput) (*models.Company, error) {
	const op = "CompanyService.Update"

	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "company not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load company", err)
	}

	if name := strings.TrimSpace(in.Name); name != "" && !strings.EqualFold(name, c.Name) {
		if _, err := s.companies.GetByName(ctx, name); err == nil {
			return nil, utils.E(utils.CodeConflict, op, "company name already exists", nil)
		} else if !errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInternal, op, "failed to check company name", err)
		}
		c.Name = name
	}
	if in.Website != "" {
		c.Website = in.Website
	}
	if in.Industry != "" {
		c.Industry = in.Industry
	}
	if in.Location != "" {
		c.Location = in.Location
	}
	if in.Notes != "" {
		c.Notes = in.Notes
	}
	if in.Profile != nil {
		c.Profile = in.Profile
	}
	c.UpdatedAt = s.now()

	if err := s.companies.Save(ctx, c); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "company name already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update company", err)
	}
	return c, nil
}

// Delete removes the company and every application that references it,
// so no application row is left with a dangling company_id.
func (s *companyService) Delete(ctx context.Context, id string) error {
	const op = "CompanyService.Delete"

	if err := s.companies.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "company not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete company", err)
	}
	return nil
}
