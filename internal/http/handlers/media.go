package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onmx/studio-backend/internal/http/response"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/services"
)

type MediaHandler struct {
	log          *logger.Logger
	mediaService services.MediaService
}

func NewMediaHandler(log *logger.Logger, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		log:          log.With("handler", "MediaHandler"),
		mediaService: mediaService,
	}
}

func (h *MediaHandler) List(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	assets, err := h.mediaService.List(c.Request.Context(), companyID, c.Query("kind"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assets": assets})
}

// Upload accepts a multipart batch under the "files" field. Per-file
// failures are reported in the tally, not as a whole-request error.
func (h *MediaHandler) Upload(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	inputs := make([]services.UploadInput, 0, len(fileHeaders))
	var closers []interface{ Close() error }
	defer func() {
		for _, cl := range closers {
			_ = cl.Close()
		}
	}()
	for _, fh := range fileHeaders {
		f, oErr := fh.Open()
		if oErr != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", oErr)
			return
		}
		closers = append(closers, f)
		inputs = append(inputs, services.UploadInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			SizeBytes:   fh.Size,
			File:        f,
		})
	}

	result, err := h.mediaService.UploadBatch(c.Request.Context(), companyID, inputs)
	if err != nil {
		h.log.Warn("Media batch upload failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

type videoUploadRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *MediaHandler) CreateVideoUpload(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	var req videoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	upload, err := h.mediaService.CreateVideoUpload(c.Request.Context(), companyID, req.Name)
	if err != nil {
		h.log.Warn("Create video upload failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, upload)
}

func (h *MediaHandler) Sync(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "assetID")
	if !ok {
		return
	}
	asset, err := h.mediaService.Sync(c.Request.Context(), companyID, id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}

func (h *MediaHandler) Delete(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "assetID")
	if !ok {
		return
	}
	if err := h.mediaService.Delete(c.Request.Context(), companyID, id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "deleted"})
}
