package models

import (
	"time"

	"github.com/lib/pq"
)

// Keyword is one entry of the shared skill vocabulary.
type Keyword struct {
	ID       string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name     string         `gorm:"column:name;type:text;uniqueIndex" json:"name"`
	Category string         `gorm:"column:category;type:text" json:"category,omitempty"`
	Aliases  pq.StringArray `gorm:"column:aliases;type:text[]" json:"aliases,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Keyword) TableName() string { return "keywords" }

// ApplicationKeyword links one keyword to one application and carries
// the per-pair match metadata. GapScore is derived, never set by the
// client: positive means a gap, negative a strength, zero neutral.
type ApplicationKeyword struct {
	ID               string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobApplicationID string `gorm:"column:job_application_id;type:uuid;index:idx_app_keyword,unique" json:"job_application_id"`
	KeywordID        string `gorm:"column:keyword_id;type:uuid;index:idx_app_keyword,unique" json:"keyword_id"`

	IsRequired  bool `gorm:"column:is_required" json:"is_required"`
	IsPreferred bool `gorm:"column:is_preferred" json:"is_preferred"`

	YearsRequired int `gorm:"column:years_required" json:"years_required"`
	YearsHave     int `gorm:"column:years_have" json:"years_have"`
	LevelRequired int `gorm:"column:level_required" json:"level_required"`
	LevelHave     int `gorm:"column:level_have" json:"level_have"`

	GapScore float64 `gorm:"column:gap_score" json:"gap_score"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ApplicationKeyword) TableName() string { return "application_keywords" }

// ComputeGapScore weighs the experience and skill-level shortfall of
// the user against what the posting asks for. Required keywords count
// double, preferred ones full, nice-to-haves half.
func (k *ApplicationKeyword) ComputeGapScore() float64 {
	weight := 0.5
	switch {
	case k.IsRequired:
		weight = 2.0
	case k.IsPreferred:
		weight = 1.0
	}
	yearsDelta := float64(k.YearsRequired - k.YearsHave)
	levelDelta := float64(k.LevelRequired - k.LevelHave)
	return weight * (yearsDelta + levelDelta)
}
