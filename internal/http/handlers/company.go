package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/onmx/studio-backend/internal/http/response"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/services"
)

type CompanyHandler struct {
	log            *logger.Logger
	companyService services.CompanyService
}

func NewCompanyHandler(log *logger.Logger, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		log:            log.With("handler", "CompanyHandler"),
		companyService: companyService,
	}
}

type createCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	AccentColor string `json:"accent_color"`
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	company, err := h.companyService.Create(c.Request.Context(), req.Name, req.Slug, req.AccentColor)
	if err != nil {
		h.log.Warn("Create company failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"company": company})
}

func (h *CompanyHandler) ListMine(c *gin.Context) {
	companies, err := h.companyService.ListMine(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"companies": companies})
}

func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("companyID"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	company, err := h.companyService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"company": company})
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("companyID"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	company, err := h.companyService.Update(c.Request.Context(), id, updates)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"company": company})
}
