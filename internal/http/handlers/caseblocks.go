package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onmx/studio-backend/internal/blocks"
	"github.com/onmx/studio-backend/internal/http/response"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/services"
)

type CaseBlockHandler struct {
	log          *logger.Logger
	blockService services.CaseBlockService
}

func NewCaseBlockHandler(log *logger.Logger, blockService services.CaseBlockService) *CaseBlockHandler {
	return &CaseBlockHandler{
		log:          log.With("handler", "CaseBlockHandler"),
		blockService: blockService,
	}
}

func (h *CaseBlockHandler) GetBlocks(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	caseID, ok := idParam(c, "caseID")
	if !ok {
		return
	}
	doc, err := h.blockService.GetBlocks(c.Request.Context(), companyID, caseID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blocks": doc})
}

type replaceBlocksRequest struct {
	Blocks []blocks.Block `json:"blocks"`
}

// Replace takes the full draft array; partial updates are not supported.
// The submitted order becomes the persisted order.
func (h *CaseBlockHandler) Replace(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	caseID, ok := idParam(c, "caseID")
	if !ok {
		return
	}
	var req replaceBlocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	doc, err := h.blockService.Replace(c.Request.Context(), companyID, caseID, req.Blocks)
	if err != nil {
		h.log.Warn("Replace blocks failed", "error", err, "case_id", caseID)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blocks": doc})
}

func (h *CaseBlockHandler) UploadImage(c *gin.Context) {
	companyID, ok := companyParam(c)
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

	url, err := h.blockService.UploadBlockImage(c.Request.Context(), companyID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.log.Warn("Upload block image failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"url": url})
}
