package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobtrail/internal/services"
	"github.com/yoockh/jobtrail/internal/utils"
	"gorm.io/datatypes"
)

type CompanyHandler struct {
	svc services.CompanyService
}

func NewCompanyHandler(svc services.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

type CompanyRequest struct {
	Name     string           `json:"name"`
	Website  string           `json:"website"`
	Industry string           `json:"industry"`
	Location string           `json:"location"`
	Notes    string           `json:"notes"`
	Profile  *json.RawMessage `json:"profile"`
}

func (r CompanyRequest) toInput() services.CompanyInput {
	in := services.CompanyInput{
		Name:     r.Name,
		Website:  r.Website,
		Industry: r.Industry,
		Location: r.Location,
		Notes:    r.Notes,
	}
	if r.Profile != nil {
		in.Profile = datatypes.JSON(*r.Profile)
	}
	return in
}

func (h *CompanyHandler) Create(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CompanyHandler.Create", "invalid request body", err))
		return
	}

	company, err := h.svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	company, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) List(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": rows, "count": len(rows)})
}

func (h *CompanyHandler) Update(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CompanyHandler.Update", "invalid request body", err))
		return
	}

	company, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
