package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChangedBy identifies the actor behind a status transition.
type ChangedBy string

const (
	ChangedByUser   ChangedBy = "User"
	ChangedBySystem ChangedBy = "System"
	ChangedByAuto   ChangedBy = "Auto"
)

// StatusHistory is one row of the append-only status ledger. Rows are
// never updated or individually deleted; they go away only when their
// application is cascade-deleted. FromStatus is nil exactly once per
// application, on the creation row, and the ToStatus of the newest row
// always matches the application's live status field.
type StatusHistory struct {
	ID               string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobApplicationID string `gorm:"column:job_application_id;type:uuid;index" json:"job_application_id"`

	FromStatus *ApplicationStatus `gorm:"column:from_status;type:text" json:"from_status"`
	ToStatus   ApplicationStatus  `gorm:"column:to_status;type:text" json:"to_status"`
	ChangedBy  ChangedBy          `gorm:"column:changed_by;type:text" json:"changed_by"`

	Notes    string         `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (StatusHistory) TableName() string { return "status_history" }

// Kind classifies this transition against the progression table.
func (h *StatusHistory) Kind() TransitionKind {
	return ClassifyTransition(h.FromStatus, h.ToStatus)
}
