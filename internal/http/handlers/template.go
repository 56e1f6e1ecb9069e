package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/onmx/studio-backend/internal/http/response"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/services"
)

type TemplateHandler struct {
	log             *logger.Logger
	templateService services.TemplateService
}

func NewTemplateHandler(log *logger.Logger, templateService services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		log:             log.With("handler", "TemplateHandler"),
		templateService: templateService,
	}
}

func (h *TemplateHandler) List(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	listing, err := h.templateService.List(c.Request.Context(), companyID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, listing)
}

type saveTemplateRequest struct {
	CaseID      uuid.UUID `json:"case_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
}

func (h *TemplateHandler) Save(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	var req saveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tmpl, err := h.templateService.SaveFromCase(c.Request.Context(), companyID, req.CaseID, req.Name, req.Description)
	if err != nil {
		h.log.Warn("Save template failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"template": tmpl})
}

// Instantiate returns a fresh draft for the given template reference: a
// built-in name or a custom template id.
func (h *TemplateHandler) Instantiate(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	ref := c.Param("templateID")
	doc, err := h.templateService.Instantiate(c.Request.Context(), companyID, ref)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blocks": doc})
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "templateID")
	if !ok {
		return
	}
	if err := h.templateService.Delete(c.Request.Context(), companyID, id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "deleted"})
}
