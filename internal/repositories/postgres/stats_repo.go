package postgres

import (
	"context"
	"time"

	"github.com/yoockh/jobtrail/internal/models"
	"gorm.io/gorm"
)

// OverviewCounts is the raw material for the overview stats, read in a
// single transaction so the numbers describe one point in time.
type OverviewCounts struct {
	Total        int64
	RecentSince  int64
	UpcomingFUps int64
	Applied      int64
	Responded    int64
	ByStatus     map[models.ApplicationStatus]int64
}

type StatsRepository interface {
	Overview(ctx context.Context, userID string, now time.Time) (*OverviewCounts, error)
	HistoryByUser(ctx context.Context, userID string) ([]models.StatusHistory, error)
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db}
}

// respondedStatuses: the application got any reaction after submission.
var respondedStatuses = []models.ApplicationStatus{
	models.StatusApplicationViewed,
	models.StatusPhoneScreening,
	models.StatusTechnicalInterview,
	models.StatusOnSiteInterview,
	models.StatusFinalInterview,
	models.StatusReferenceCheck,
	models.StatusOfferExtended,
	models.StatusOfferAccepted,
	models.StatusOfferDeclined,
}

// closedForFollowUp: no follow-up reminder makes sense anymore.
var closedForFollowUp = []models.ApplicationStatus{
	models.StatusOfferAccepted,
	models.StatusRejected,
	models.StatusWithdrawn,
}

func (r *statsRepo) Overview(ctx context.Context, userID string, now time.Time) (*OverviewCounts, error) {
	out := &OverviewCounts{ByStatus: make(map[models.ApplicationStatus]int64, len(models.AllStatuses))}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apps := func() *gorm.DB {
			return tx.Model(&models.JobApplication{}).Where("user_id = ?", userID)
		}

		if err := apps().Count(&out.Total).Error; err != nil {
			return err
		}
		if err := apps().
			Where("created_at >= ?", now.AddDate(0, 0, -30)).
			Count(&out.RecentSince).Error; err != nil {
			return err
		}
		if err := apps().
			Where("follow_up_at IS NOT NULL AND follow_up_at >= ?", now).
			Where("status NOT IN ?", closedForFollowUp).
			Count(&out.UpcomingFUps).Error; err != nil {
			return err
		}
		if err := apps().
			Where("status <> ?", models.StatusInterested).
			Count(&out.Applied).Error; err != nil {
			return err
		}
		if err := apps().
			Where("status IN ?", respondedStatuses).
			Count(&out.Responded).Error; err != nil {
			return err
		}

		type statusCount struct {
			Status models.ApplicationStatus
			N      int64
		}
		var counts []statusCount
		if err := apps().
			Select("status, COUNT(*) AS n").
			Group("status").
			Scan(&counts).Error; err != nil {
			return err
		}
		for _, c := range counts {
			out.ByStatus[c.Status] = c.N
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HistoryByUser returns every ledger row of the user's applications,
// grouped by application and oldest-first within each, which is the
// order the time-in-status aggregation walks them in.
func (r *statsRepo) HistoryByUser(ctx context.Context, userID string) ([]models.StatusHistory, error) {
	var rows []models.StatusHistory
	err := r.db.WithContext(ctx).
		Where("job_application_id IN (?)",
			r.db.Model(&models.JobApplication{}).Select("id").Where("user_id = ?", userID)).
		Order("job_application_id ASC, created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}
