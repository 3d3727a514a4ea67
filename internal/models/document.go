package models

import "time"

// Document is metadata for an uploaded file (resume, cover letter,
// offer PDF). The optional application link decides its fate on
// cascade: linked documents are hard-deleted with the application,
// unlinked ones only ever soft-delete via IsActive.
type Document struct {
	ID               string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID           string  `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	JobApplicationID *string `gorm:"column:job_application_id;type:uuid;index" json:"job_application_id,omitempty"`

	FileName string `gorm:"column:file_name;type:text" json:"file_name"`
	FilePath string `gorm:"column:file_path;type:text" json:"file_path"`
	FileSize int64  `gorm:"column:file_size" json:"file_size"`
	MimeType string `gorm:"column:mime_type;type:text" json:"mime_type"`
	DocType  string `gorm:"column:doc_type;type:text" json:"doc_type,omitempty"`

	IsActive bool `gorm:"column:is_active;default:true" json:"is_active"`

	UploadedAt time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

func (Document) TableName() string { return "documents" }
