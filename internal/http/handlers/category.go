package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onmx/studio-backend/internal/http/response"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/services"
)

type CategoryHandler struct {
	log             *logger.Logger
	categoryService services.CategoryService
}

func NewCategoryHandler(log *logger.Logger, categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		log:             log.With("handler", "CategoryHandler"),
		categoryService: categoryService,
	}
}

type categoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	categories, err := h.categoryService.List(c.Request.Context(), companyID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"categories": categories})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), companyID, req.Name, req.SortOrder)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"category": category})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "categoryID")
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	category, err := h.categoryService.Update(c.Request.Context(), companyID, id, req.Name, req.SortOrder)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"category": category})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "categoryID")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), companyID, id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "deleted"})
}
