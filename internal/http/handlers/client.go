package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onmx/studio-backend/internal/http/response"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/services"
)

type ClientHandler struct {
	log           *logger.Logger
	clientService services.ClientService
}

func NewClientHandler(log *logger.Logger, clientService services.ClientService) *ClientHandler {
	return &ClientHandler{
		log:           log.With("handler", "ClientHandler"),
		clientService: clientService,
	}
}

type clientRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

func (h *ClientHandler) List(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	clients, err := h.clientService.List(c.Request.Context(), companyID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"clients": clients})
}

func (h *ClientHandler) Create(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	client, err := h.clientService.Create(c.Request.Context(), companyID, req.Name, req.LogoURL)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"client": client})
}

func (h *ClientHandler) Update(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "clientID")
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	client, err := h.clientService.Update(c.Request.Context(), companyID, id, req.Name, req.LogoURL)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"client": client})
}

func (h *ClientHandler) Delete(c *gin.Context) {
	companyID, ok := companyParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "clientID")
	if !ok {
		return
	}
	if err := h.clientService.Delete(c.Request.Context(), companyID, id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "deleted"})
}
