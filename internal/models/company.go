package models

import (
	"time"

	"gorm.io/datatypes"
)

// Company is referenced by job applications but lives independently of
// them: deleting an application never touches its company. Names are
// unique case-insensitively (enforced by the repository via a
// LOWER(name) lookup, since a plain unique index is case-sensitive).
type Company struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name     string `gorm:"column:name;type:text;uniqueIndex" json:"name"`
	Website  string `gorm:"column:website;type:text" json:"website,omitempty"`
	Industry string `gorm:"column:industry;type:text" json:"industry,omitempty"`
	Location string `gorm:"column:location;type:text" json:"location,omitempty"`
	Notes    string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	// Free-form profile attributes (size, funding, culture notes, ...)
	Profile datatypes.JSON `gorm:"column:profile;type:jsonb" json:"profile,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Company) TableName() string { return "companies" }
