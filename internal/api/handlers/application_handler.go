package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobtrail/internal/models"
	pgrepo "github.com/yoockh/jobtrail/internal/repositories/postgres"
	"github.com/yoockh/jobtrail/internal/services"
	"github.com/yoockh/jobtrail/internal/utils"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type CreateApplicationRequest struct {
	CompanyID   string `json:"company_id" binding:"required"`
	JobTitle    string `json:"job_title" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Location    string `json:"location"`
	WorkMode    string `json:"work_mode"`
	JobType     string `json:"job_type"`

	SalaryMin *int64 `json:"salary_min"`
	SalaryMax *int64 `json:"salary_max"`

	Status   string `json:"status"`
	Priority string `json:"priority"`

	AppliedAt          *time.Time `json:"applied_at"`
	FollowUpAt         *time.Time `json:"follow_up_at"`
	InterviewAt        *time.Time `json:"interview_at"`
	ResponseExpectedAt *time.Time `json:"response_expected_at"`

	Notes string `json:"notes"`
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.Create", "invalid request body", err))
		return
	}

	app, err := h.svc.Create(c.Request.Context(), userID, services.CreateApplicationInput{
		CompanyID:          req.CompanyID,
		JobTitle:           req.JobTitle,
		Description:        req.Description,
		URL:                req.URL,
		Location:           req.Location,
		WorkMode:           models.WorkMode(req.WorkMode),
		JobType:            req.JobType,
		SalaryMin:          req.SalaryMin,
		SalaryMax:          req.SalaryMax,
		Status:             models.ApplicationStatus(req.Status),
		Priority:           models.Priority(req.Priority),
		AppliedAt:          req.AppliedAt,
		FollowUpAt:         req.FollowUpAt,
		InterviewAt:        req.InterviewAt,
		ResponseExpectedAt: req.ResponseExpectedAt,
		Notes:              req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	app, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	f := pgrepo.ApplicationFilter{
		Status:    models.ApplicationStatus(c.Query("status")),
		CompanyID: c.Query("company_id"),
		Search:    c.Query("search"),
	}
	if v := c.Query("starred"); v != "" {
		b := v == "true"
		f.Starred = &b
	}
	if v := c.Query("archived"); v != "" {
		b := v == "true"
		f.Archived = &b
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.svc.List(c.Request.Context(), userID, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": rows, "count": len(rows)})
}

type UpdateApplicationRequest struct {
	JobTitle    *string `json:"job_title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Location    *string `json:"location"`
	WorkMode    *string `json:"work_mode"`
	JobType     *string `json:"job_type"`

	SalaryMin *int64 `json:"salary_min"`
	SalaryMax *int64 `json:"salary_max"`

	Status      *string `json:"status"`
	StatusNotes string  `json:"status_notes"`
	Priority    *string `json:"priority"`

	AppliedAt          *time.Time `json:"applied_at"`
	FollowUpAt         *time.Time `json:"follow_up_at"`
	InterviewAt        *time.Time `json:"interview_at"`
	ResponseExpectedAt *time.Time `json:"response_expected_at"`

	IsStarred  *bool   `json:"is_starred"`
	IsArchived *bool   `json:"is_archived"`
	Notes      *string `json:"notes"`
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.Update", "invalid request body", err))
		return
	}

	in := services.UpdateApplicationInput{
		JobTitle:           req.JobTitle,
		Description:        req.Description,
		URL:                req.URL,
		Location:           req.Location,
		JobType:            req.JobType,
		SalaryMin:          req.SalaryMin,
		SalaryMax:          req.SalaryMax,
		StatusNotes:        req.StatusNotes,
		AppliedAt:          req.AppliedAt,
		FollowUpAt:         req.FollowUpAt,
		InterviewAt:        req.InterviewAt,
		ResponseExpectedAt: req.ResponseExpectedAt,
		IsStarred:          req.IsStarred,
		IsArchived:         req.IsArchived,
		Notes:              req.Notes,
	}
	if req.WorkMode != nil {
		wm := models.WorkMode(*req.WorkMode)
		in.WorkMode = &wm
	}
	if req.Status != nil {
		st := models.ApplicationStatus(*req.Status)
		in.Status = &st
	}
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		in.Priority = &p
	}

	app, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.UpdateStatus", "invalid request body", err))
		return
	}

	app, err := h.svc.UpdateStatus(c.Request.Context(), userID, c.Param("id"),
		models.ApplicationStatus(req.Status), models.ChangedByUser, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
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

func (h *ApplicationHandler) Timeline(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entries, err := h.svc.Timeline(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeline": entries})
}
