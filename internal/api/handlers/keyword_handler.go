package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobtrail/internal/services"
	"github.com/yoockh/jobtrail/internal/utils"
)

type KeywordHandler struct {
	svc services.KeywordService
}

func NewKeywordHandler(svc services.KeywordService) *KeywordHandler {
	return &KeywordHandler{svc: svc}
}

type CreateKeywordRequest struct {
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases"`
}

func (h *KeywordHandler) Create(c *gin.Context) {
	var req CreateKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "KeywordHandler.Create", "invalid request body", err))
		return
	}

	k, err := h.svc.Create(c.Request.Context(), req.Name, req.Category, req.Aliases)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, k)
}

func (h *KeywordHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": rows, "count": len(rows)})
}

type AttachKeywordRequest struct {
	KeywordID     string `json:"keyword_id" binding:"required"`
	IsRequired    bool   `json:"is_required"`
	IsPreferred   bool   `json:"is_preferred"`
	YearsRequired int    `json:"years_required"`
	YearsHave     int    `json:"years_have"`
	LevelRequired int    `json:"level_required"`
	LevelHave     int    `json:"level_have"`
}

func (h *KeywordHandler) Attach(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req AttachKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "KeywordHandler.Attach", "invalid request body", err))
		return
	}

	link, err := h.svc.Attach(c.Request.Context(), userID, c.Param("id"), services.AttachKeywordInput{
		KeywordID:     req.KeywordID,
		IsRequired:    req.IsRequired,
		IsPreferred:   req.IsPreferred,
		YearsRequired: req.YearsRequired,
		YearsHave:     req.YearsHave,
		LevelRequired: req.LevelRequired,
		LevelHave:     req.LevelHave,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *KeywordHandler) Detach(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Detach(c.Request.Context(), userID, c.Param("id"), c.Param("keyword_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *KeywordHandler) ListForApplication(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.svc.ListForApplication(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": rows, "count": len(rows)})
}
