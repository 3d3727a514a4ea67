package services

import (
	"context"
	"math"
	"time"

	"github.com/yoockh/jobtrail/internal/cache"
	"github.com/yoockh/jobtrail/internal/models"
	pgrepo "github.com/yoockh/jobtrail/internal/repositories/postgres"
	"github.com/yoockh/jobtrail/internal/utils"
)

// OverviewStats is the dashboard payload. StatusDistribution always
// carries all 14 statuses; absent ones are explicit zeros.
type OverviewStats struct {
	TotalApplications  int64                              `json:"total_applications"`
	RecentApplications int64                              `json:"recent_applications"` // created in the last 30 days
	UpcomingFollowUps  int64                              `json:"upcoming_follow_ups"`
	ResponseRate       float64                            `json:"response_rate"` // percent, one decimal
	StatusDistribution map[models.ApplicationStatus]int64 `json:"status_distribution"`
	GeneratedAt        time.Time                          `json:"generated_at"`
}

// StatusPairAverage is the mean dwell time for one observed transition
// pair: how long applications sat in FromStatus before this particular
// move to ToStatus happened.
type StatusPairAverage struct {
	FromStatus models.ApplicationStatus `json:"from_status"`
	ToStatus   models.ApplicationStatus `json:"to_status"`
	AvgDays    float64                  `json:"avg_days"`
	Samples    int                      `json:"samples"`
}

type StatsService interface {
	Overview(ctx context.Context, userID string) (*OverviewStats, error)
	AverageTimeInStatus(ctx context.Context, userID string) ([]StatusPairAverage, error)
}

type statsService struct {
	stats pgrepo.StatsRepository
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewStatsService(stats pgrepo.StatsRepository, c cache.Cache) StatsService {
	return &statsService{
		stats: stats,
		cache: c,
		ttl:   60 * time.Second,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func statsOverviewKey(userID string) string {
	return "stats:overview:" + userID
}

func (s *statsService) Overview(ctx context.Context, userID string) (*OverviewStats, error) {
	const op = "StatsService.Overview"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if s.cache != nil {
		var cached OverviewStats
		if hit, err := s.cache.GetJSON(ctx, statsOverviewKey(userID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	now := s.now()
	counts, err := s.stats.Overview(ctx, userID, now)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to compute overview", err)
	}

	out := &OverviewStats{
		TotalApplications:  counts.Total,
		RecentApplications: counts.RecentSince,
		UpcomingFollowUps:  counts.UpcomingFUps,
		ResponseRate:       responseRate(counts.Responded, counts.Applied),
		StatusDistribution: make(map[models.ApplicationStatus]int64, len(models.AllStatuses)),
		GeneratedAt:        now,
	}
	for _, st := range models.AllStatuses {
		out.StatusDistribution[st] = counts.ByStatus[st]
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, statsOverviewKey(userID), out, s.ttl)
	}
	return out, nil
}

// responseRate is responded/applied as a percentage rounded to one
// decimal. Zero applied applications means a rate of 0, not an error.
func responseRate(responded, applied int64) float64 {
	if applied == 0 {
		return 0
	}
	return math.Round(float64(responded)/float64(applied)*1000) / 10
}

func (s *statsService) AverageTimeInStatus(ctx context.Context, userID string) ([]StatusPairAverage, error) {
	const op = "StatsService.AverageTimeInStatus"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	rows, err := s.stats.HistoryByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load history", err)
	}
	return averageTimeInStatus(rows), nil
}

type pairKey struct {
	from models.ApplicationStatus
	to   models.ApplicationStatus
}

// averageTimeInStatus walks each application's ledger in order. For a
// row with a non-nil FromStatus, the time since the previous row is the
// dwell time in FromStatus, attributed to the (from, to) pair. The last
// row of each application has no successor yet and contributes nothing.
func averageTimeInStatus(rows []models.StatusHistory) []StatusPairAverage {
	type acc struct {
		days    float64
		samples int
	}
	sums := make(map[pairKey]*acc)
	var order []pairKey

	var prev *models.StatusHistory
	for i := range rows {
		row := &rows[i]
		if prev != nil && prev.JobApplicationID == row.JobApplicationID && row.FromStatus != nil {
			k := pairKey{from: *row.FromStatus, to: row.ToStatus}
			a, ok := sums[k]
			if !ok {
				a = &acc{}
				sums[k] = a
				order = append(order, k)
			}
			a.days += row.CreatedAt.Sub(prev.CreatedAt).Hours() / 24
			a.samples++
		}
		prev = row
	}

	out := make([]StatusPairAverage, 0, len(order))
	for _, k := range order {
		a := sums[k]
		out = append(out, StatusPairAverage{
			FromStatus: k.from,
			ToStatus:   k.to,
			AvgDays:    math.Round(a.days/float64(a.samples)*10) / 10,
			Samples:    a.samples,
		})
	}
	return out
}
