package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/yoockh/jobtrail/internal/cache"
	"github.com/yoockh/jobtrail/internal/models"
	pgrepo "github.com/yoockh/jobtrail/internal/repositories/postgres"
	"github.com/yoockh/jobtrail/internal/utils"
)

type CreateApplicationInput struct {
	CompanyID   string
	JobTitle    string
	Description string
	URL         string
	Location    string
	WorkMode    models.WorkMode
	JobType     string

	SalaryMin *int64
	SalaryMax *int64

	Status   models.ApplicationStatus // empty means "Interested"
	Priority models.Priority

	AppliedAt          *time.Time
	FollowUpAt         *time.Time
	InterviewAt        *time.Time
	ResponseExpectedAt *time.Time

	Notes string
}

// UpdateApplicationInput is a partial patch; nil fields are untouched.
// A non-nil Status that differs from the current one is a transition
// and appends to the ledger.
type UpdateApplicationInput struct {
	JobTitle    *string
	Description *string
	URL         *string
	Location    *string
	WorkMode    *models.WorkMode
	JobType     *string

	SalaryMin *int64
	SalaryMax *int64

	Status      *models.ApplicationStatus
	StatusNotes string
	Priority    *models.Priority

	AppliedAt          *time.Time
	FollowUpAt         *time.Time
	InterviewAt        *time.Time
	ResponseExpectedAt *time.Time

	IsStarred  *bool
	IsArchived *bool
	Notes      *string
}

// TimelineEntry is one ledger row annotated for display.
type TimelineEntry struct {
	models.StatusHistory
	Kind        models.TransitionKind `json:"kind"`
	DaysElapsed int                   `json:"days_elapsed"`
}

type ApplicationService interface {
	Create(ctx context.Context, userID string, in CreateApplicationInput) (*models.JobApplication, error)
	Get(ctx context.Context, userID, id string) (*models.JobApplication, error)
	List(ctx context.Context, userID string, f pgrepo.ApplicationFilter) ([]models.JobApplication, error)
	Update(ctx context.Context, userID, id string, in UpdateApplicationInput) (*models.JobApplication, error)
	UpdateStatus(ctx context.Context, userID, id string, status models.ApplicationStatus, actor models.ChangedBy, notes string) (*models.JobApplication, error)
	Delete(ctx context.Context, userID, id string) error
	Timeline(ctx context.Context, userID, id string) ([]TimelineEntry, error)
}

type applicationService struct {
	apps      pgrepo.ApplicationRepository
	history   pgrepo.HistoryRepository
	companies pgrepo.CompanyRepository
	cache     cache.Cache
	now       func() time.Time
}

func NewApplicationService(
	apps pgrepo.ApplicationRepository,
	history pgrepo.HistoryRepository,
	companies pgrepo.CompanyRepository,
	c cache.Cache,
) ApplicationService {
	return &applicationService{
		apps:      apps,
		history:   history,
		companies: companies,
		cache:     c,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func validateTitle(op, title string) error {
	n := utf8.RuneCountInString(title)
	if n < 2 || n > 100 {
		return utils.E(utils.CodeInvalidArgument, op, "job_title must be 2-100 characters", nil)
	}
	return nil
}

func validateSalaryRange(op string, min, max *int64) error {
	if min != nil && max != nil && *min > *max {
		return utils.E(utils.CodeInvalidArgument, op, "salary_min must not exceed salary_max", nil)
	}
	return nil
}

func (s *applicationService) Create(ctx context.Context, userID string, in CreateApplicationInput) (*models.JobApplication, error) {
	const op = "ApplicationService.Create"

	if userID == "" || in.CompanyID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and company_id are required", nil)
	}
	if err := validateTitle(op, in.JobTitle); err != nil {
		return nil, err
	}
	if err := validateSalaryRange(op, in.SalaryMin, in.SalaryMax); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.StatusInterested
	}
	if !models.ValidStatus(status) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown status", nil)
	}

	if _, err := s.companies.GetByID(ctx, in.CompanyID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "company not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to resolve company", err)
	}

	now := s.now()
	app := &models.JobApplication{
		ID:                 uuid.NewString(),
		UserID:             userID,
		CompanyID:          in.CompanyID,
		JobTitle:           in.JobTitle,
		Description:        in.Description,
		URL:                in.URL,
		Location:           in.Location,
		WorkMode:           in.WorkMode,
		JobType:            in.JobType,
		SalaryMin:          in.SalaryMin,
		SalaryMax:          in.SalaryMax,
		Status:             status,
		Priority:           in.Priority,
		AppliedAt:          in.AppliedAt,
		FollowUpAt:         in.FollowUpAt,
		InterviewAt:        in.InterviewAt,
		ResponseExpectedAt: in.ResponseExpectedAt,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	first := &models.StatusHistory{
		ID:               uuid.NewString(),
		JobApplicationID: app.ID,
		FromStatus:       nil, // creation row, by definition
		ToStatus:         status,
		ChangedBy:        models.ChangedByUser,
		CreatedAt:        now,
	}

	if err := s.apps.CreateWithHistory(ctx, app, first); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}
	s.invalidateStats(ctx, userID)
	return app, nil
}

func (s *applicationService) Get(ctx context.Context, userID, id string) (*models.JobApplication, error) {
	const op = "ApplicationService.Get"

	app, err := s.apps.GetOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	return app, nil
}

func (s *applicationService) List(ctx context.Context, userID string, f pgrepo.ApplicationFilter) ([]models.JobApplication, error) {
	const op = "ApplicationService.List"

	if f.Status != "" && !models.ValidStatus(f.Status) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown status filter", nil)
	}
	rows, err := s.apps.List(ctx, userID, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return rows, nil
}

func (s *applicationService) Update(ctx context.Context, userID, id string, in UpdateApplicationInput) (*models.JobApplication, error) {
	const op = "ApplicationService.Update"

	// all validation happens before the first write; a rejected patch
	// must leave no field committed
	if in.Status != nil && !models.ValidStatus(*in.Status) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown status", nil)
	}

	app, err := s.apps.GetOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	if in.JobTitle != nil {
		if err := validateTitle(op, *in.JobTitle); err != nil {
			return nil, err
		}
		app.JobTitle = *in.JobTitle
	}
	if in.Description != nil {
		app.Description = *in.Description
	}
	if in.URL != nil {
		app.URL = *in.URL
	}
	if in.Location != nil {
		app.Location = *in.Location
	}
	if in.WorkMode != nil {
		app.WorkMode = *in.WorkMode
	}
	if in.JobType != nil {
		app.JobType = *in.JobType
	}

	min, max := app.SalaryMin, app.SalaryMax
	if in.SalaryMin != nil {
		min = in.SalaryMin
	}
	if in.SalaryMax != nil {
		max = in.SalaryMax
	}
	if err := validateSalaryRange(op, min, max); err != nil {
		return nil, err
	}
	app.SalaryMin, app.SalaryMax = min, max

	if in.Priority != nil {
		app.Priority = *in.Priority
	}
	if in.AppliedAt != nil {
		app.AppliedAt = in.AppliedAt
	}
	if in.FollowUpAt != nil {
		app.FollowUpAt = in.FollowUpAt
	}
	if in.InterviewAt != nil {
		app.InterviewAt = in.InterviewAt
	}
	if in.ResponseExpectedAt != nil {
		app.ResponseExpectedAt = in.ResponseExpectedAt
	}
	if in.IsStarred != nil {
		app.IsStarred = *in.IsStarred
	}
	if in.IsArchived != nil {
		app.IsArchived = *in.IsArchived
	}
	if in.Notes != nil {
		app.Notes = *in.Notes
	}

	// non-status fields first; a status change rides its own transaction
	// together with the ledger append
	app.UpdatedAt = s.now()
	if err := s.apps.Save(ctx, app); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update application", err)
	}

	if in.Status != nil && *in.Status != app.Status {
		return s.transition(ctx, op, app, *in.Status, models.ChangedByUser, in.StatusNotes)
	}

	s.invalidateStats(ctx, userID)
	return app, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, userID, id string, status models.ApplicationStatus, actor models.ChangedBy, notes string) (*models.JobApplication, error) {
	const op = "ApplicationService.UpdateStatus"

	app, err := s.apps.GetOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	if status == app.Status {
		// a no-op transition is not a transition; nothing is written
		return app, nil
	}
	return s.transition(ctx, op, app, status, actor, notes)
}

// transition writes the new status and the matching ledger row as one
// atomic unit. app still holds the pre-transition status on entry.
func (s *applicationService) transition(ctx context.Context, op string, app *models.JobApplication, to models.ApplicationStatus, actor models.ChangedBy, notes string) (*models.JobApplication, error) {
	if !models.ValidStatus(to) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown status", nil)
	}
	if actor == "" {
		actor = models.ChangedByUser
	}

	from := app.Status
	now := s.now()
	app.Status = to
	app.UpdatedAt = now

	entry := &models.StatusHistory{
		ID:               uuid.NewString(),
		JobApplicationID: app.ID,
		FromStatus:       &from,
		ToStatus:         to,
		ChangedBy:        actor,
		Notes:            notes,
		CreatedAt:        now,
	}

	if err := s.apps.UpdateStatusWithHistory(ctx, app, entry); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to record status change", err)
	}
	s.invalidateStats(ctx, app.UserID)
	return app, nil
}

func (s *applicationService) Delete(ctx context.Context, userID, id string) error {
	const op = "ApplicationService.Delete"

	// ownership check first so a foreign id reads as NotFound, not as a
	// half-attempted delete
	if _, err := s.apps.GetOwned(ctx, userID, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	if err := s.apps.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete application", err)
	}
	s.invalidateStats(ctx, userID)
	return nil
}

func (s *applicationService) Timeline(ctx context.Context, userID, id string) ([]TimelineEntry, error) {
	const op = "ApplicationService.Timeline"

	if _, err := s.apps.GetOwned(ctx, userID, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	rows, err := s.history.ListByApplication(ctx, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load timeline", err)
	}

	now := s.now()
	out := make([]TimelineEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, TimelineEntry{
			StatusHistory: row,
			Kind:          row.Kind(),
			DaysElapsed:   models.ElapsedDays(row.CreatedAt, now),
		})
	}
	return out, nil
}

func (s *applicationService) invalidateStats(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, statsOverviewKey(userID))
}
