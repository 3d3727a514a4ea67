package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobtrail/internal/services"
	"github.com/yoockh/jobtrail/internal/storage"
	"github.com/yoockh/jobtrail/internal/utils"
)

type DocumentHandler struct {
	svc    services.DocumentService
	signer storage.Signer
}

func NewDocumentHandler(svc services.DocumentService, signer storage.Signer) *DocumentHandler {
	return &DocumentHandler{svc: svc, signer: signer}
}

const maxDocumentSize = 20 << 20

func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentHandler.Upload", "missing multipart field 'file'", err))
		return
	}
	if fh.Size <= 0 {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentHandler.Upload", "empty file", nil))
		return
	}
	if fh.Size > maxDocumentSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentHandler.Upload", "file too large (max 20MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "DocumentHandler.Upload", "failed to open upload", err))
		return
	}
	defer file.Close()

	in := services.UploadDocumentInput{
		FileName: fh.Filename,
		FileSize: fh.Size,
		MimeType: fh.Header.Get("Content-Type"),
		DocType:  c.PostForm("doc_type"),
	}
	if appID := c.PostForm("job_application_id"); appID != "" {
		in.JobApplicationID = &appID
	}

	row, err := h.svc.Upload(c.Request.Context(), userID, in, file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	activeOnly := c.DefaultQuery("active", "true") == "true"
	rows, err := h.svc.List(c.Request.Context(), userID, activeOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": rows, "count": len(rows)})
}

// DownloadURL hands out a short-lived signed URL instead of proxying
// the object through the API.
func (h *DocumentHandler) DownloadURL(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	doc, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if h.signer == nil {
		writeError(c, utils.E(utils.CodeInternal, "DocumentHandler.DownloadURL", "signer is not configured", nil))
		return
	}

	url, err := h.signer.SignedGetURL(c.Request.Context(), doc.FilePath, 15*time.Minute)
	if err != nil {
		writeError(c, utils.E(utils.CodeUnavailable, "DocumentHandler.DownloadURL", "failed to sign url", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expires_in_seconds": 900})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
