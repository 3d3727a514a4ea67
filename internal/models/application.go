package models

import "time"

type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOnsite WorkMode = "onsite"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// JobApplication is the root aggregate: status changes on it are
// mirrored into the status_history ledger, and deleting it removes its
// history, keyword links, and attached documents in one transaction.
type JobApplication struct {
	ID        string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	CompanyID string `gorm:"column:company_id;type:uuid;index" json:"company_id"`

	JobTitle    string   `gorm:"column:job_title;type:text" json:"job_title"`
	Description string   `gorm:"column:description;type:text" json:"description,omitempty"`
	URL         string   `gorm:"column:url;type:text" json:"url,omitempty"`
	Location    string   `gorm:"column:location;type:text" json:"location,omitempty"`
	WorkMode    WorkMode `gorm:"column:work_mode;type:text" json:"work_mode,omitempty"`
	JobType     string   `gorm:"column:job_type;type:text" json:"job_type,omitempty"`

	SalaryMin *int64 `gorm:"column:salary_min" json:"salary_min,omitempty"`
	SalaryMax *int64 `gorm:"column:salary_max" json:"salary_max,omitempty"`

	Status   ApplicationStatus `gorm:"column:status;type:text;index" json:"status"`
	Priority Priority          `gorm:"column:priority;type:text" json:"priority,omitempty"`

	AppliedAt          *time.Time `gorm:"column:applied_at" json:"applied_at,omitempty"`
	FollowUpAt         *time.Time `gorm:"column:follow_up_at" json:"follow_up_at,omitempty"`
	InterviewAt        *time.Time `gorm:"column:interview_at" json:"interview_at,omitempty"`
	ResponseExpectedAt *time.Time `gorm:"column:response_expected_at" json:"response_expected_at,omitempty"`

	IsStarred  bool   `gorm:"column:is_starred" json:"is_starred"`
	IsArchived bool   `gorm:"column:is_archived" json:"is_archived"`
	Notes      string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (JobApplication) TableName() string { return "job_applications" }
