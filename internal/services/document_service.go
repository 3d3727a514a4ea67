package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobtrail/internal/models"
	pgrepo "github.com/yoockh/jobtrail/internal/repositories/postgres"
	"github.com/yoockh/jobtrail/internal/storage"
	"github.com/yoockh/jobtrail/internal/utils"
)

type UploadDocumentInput struct {
	FileName         string
	FileSize         int64
	MimeType         string
	DocType          string // resume|cover_letter|offer|other
	JobApplicationID *string
}

type DocumentService interface {
	Upload(ctx context.Context, userID string, in UploadDocumentInput, r io.Reader) (*models.Document, error)
	Get(ctx context.Context, userID, id string) (*models.Document, error)
	List(ctx context.Context, userID string, activeOnly bool) ([]models.Document, error)
	Delete(ctx context.Context, userID, id string) error
}

type documentService struct {
	docs     pgrepo.DocumentRepository
	apps     pgrepo.ApplicationRepository
	uploader storage.Uploader
	now      func() time.Time
}

func NewDocumentService(docs pgrepo.DocumentRepository, apps pgrepo.ApplicationRepository, uploader storage.Uploader) DocumentService {
	return &documentService{
		docs:     docs,
		apps:     apps,
		uploader: uploader,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *documentService) Upload(ctx context.Context, userID string, in UploadDocumentInput, r io.Reader) (*models.Document, error) {
	const op = "DocumentService.Upload"

	if userID == "" || in.FileName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and file_name are required", nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	// a document may only be linked to an application the caller owns
	if in.JobApplicationID != nil {
		if _, err := s.apps.GetOwned(ctx, userID, *in.JobApplicationID); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to resolve application", err)
		}
	}

	id := uuid.NewString()
	objectName := "documents/" + userID + "/" + id
	storedPath, err := s.uploader.Upload(ctx, objectName, in.MimeType, r)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload file", err)
	}

	d := &models.Document{
		ID:               id,
		UserID:           userID,
		JobApplicationID: in.JobApplicationID,
		FileName:         in.FileName,
		FilePath:         storedPath,
		FileSize:         in.FileSize,
		MimeType:         in.MimeType,
		DocType:          in.DocType,
		IsActive:         true,
		UploadedAt:       s.now(),
	}
	if err := s.docs.Insert(ctx, d); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist document metadata", err)
	}
	return d, nil
}

func (s *documentService) Get(ctx context.Context, userID, id string) (*models.Document, error) {
	const op = "DocumentService.Get"

	d, err := s.docs.GetOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "document not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get document", err)
	}
	return d, nil
}

func (s *documentService) List(ctx context.Context, userID string, activeOnly bool) ([]models.Document, error) {
	const op = "DocumentService.List"

	rows, err := s.docs.ListByUser(ctx, userID, activeOnly)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list documents", err)
	}
	return rows, nil
}

// Delete is a soft delete; only an application cascade hard-deletes
// document rows.
func (s *documentService) Delete(ctx context.Context, userID, id string) error {
	const op = "DocumentService.Delete"

	if err := s.docs.SoftDelete(ctx, userID, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "document not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete document", err)
	}
	return nil
}
