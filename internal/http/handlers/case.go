package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/onmx/studio-backend/internal/http/response"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/repos"
	"github.com/onmx/studio-backend/internal/services"
)

type CaseHandler struct {
	log         *logger.Logger
	caseService services.CaseService
}

func NewCaseHandler(log *logger.Logger, caseService services.CaseService) *CaseHandler {
	return &CaseHandler{
		log:         log.With("handler", "CaseHandler"),
		caseService: caseService,
	}
}

// caseRequest serves both create and the PATCH update; absent fields stay
// nil and are not applied.
type caseRequest struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Summary         *string    `json:"summary"`
	Year            *int       `json:"year"`
	ClientID        *uuid.UUID `json:"client_id"`
	CategoryID      *uuid.UUID `json:"category_id"`
	BackgroundColor *string    `json:"background_color"`
	ContainerPad    *int       `json:"container_pad"`
	ContainerRadius *int       `json:"container_radius"`
	ContainerGap    *int       `json:"container_gap"`
	Template        string     `json:"template"`
}

func (r caseRequest) input() services.CaseInput {
	return services.CaseInput{
		Title:           r.Title,
		Slug:            r.Slug,
		Summary:         r.Summary,
		Year:            r.Year,
		ClientID:        r.ClientID,
		CategoryID:      r.CategoryID,
		BackgroundColor: r.BackgroundColor,
		ContainerPad:    r.ContainerPad,
		ContainerRadius: r.ContainerRadius,
		ContainerGap:    r.ContainerGap,
	}
}

func (h *CaseHandler) List(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	filter := repos.CaseFilter{
		Status: c.Query("status"),
		Search: c.Query("q"),
	}
	if raw := c.Query("client_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.ClientID = &id
		}
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CategoryID = &id
		}
	}
	cases, err := h.caseService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"cases": cases})
}

func (h *CaseHandler) Create(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.caseService.Create(c.Request.Context(), companyID, req.input(), req.Template)
	if err != nil {
		h.log.Warn("Create case failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"case": row})
}

func (h *CaseHandler) Get(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "caseID")
	if !ok {
		return
	}
	row, err := h.caseService.Get(c.Request.Context(), companyID, id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"case": row})
}

func (h *CaseHandler) Update(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "caseID")
	if !ok {
		return
	}
	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.caseService.Update(c.Request.Context(), companyID, id, req.input())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"case": row})
}

func (h *CaseHandler) Delete(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "caseID")
	if !ok {
		return
	}
	if err := h.caseService.Delete(c.Request.Context(), companyID, id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "deleted"})
}

func (h *CaseHandler) Duplicate(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "caseID")
	if !ok {
		return
	}
	row, err := h.caseService.Duplicate(c.Request.Context(), companyID, id)
	if err != nil {
		h.log.Warn("Duplicate case failed", "error", err, "case_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"case": row})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *CaseHandler) SetStatus(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "caseID")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.caseService.SetStatus(c.Request.Context(), companyID, id, req.Status)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"case": row})
}

func (h *CaseHandler) UploadCover(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "caseID")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer file.Close()

	row, err := h.caseService.UploadCover(c.Request.Context(), companyID, id, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.log.Warn("Upload cover failed", "error", err, "case_id", id)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"case": row})
}

func companyParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("companyID"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return uuid.Nil, false
	}
	return id, true
}

func idParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return uuid.Nil, false
	}
	return id, true
}
