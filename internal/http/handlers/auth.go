package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/onmx/studio-backend/internal/http/response"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	access, refresh, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("Login failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	access, refresh, err := h.authService.Refresh(c.Request.Context())
	if err != nil {
		h.log.Warn("Refresh failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		h.log.Warn("Logout failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "logged_out"})
}

type grantRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
	Role      string    `json:"role"`
}

type inviteUserRequest struct {
	Email  string         `json:"email" binding:"required,email"`
	Name   string         `json:"name"`
	Grants []grantRequest `json:"grants" binding:"required,min=1"`
}

func (h *AuthHandler) InviteUser(c *gin.Context) {
	var req inviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, tempPassword, err := h.authService.InviteUser(c.Request.Context(), req.Email, req.Name, toGrants(req.Grants))
	if err != nil {
		h.log.Warn("InviteUser failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"user":          user,
		"temp_password": tempPassword,
	})
}

type createUserRequest struct {
	Email    string         `json:"email" binding:"required,email"`
	Name     string         `json:"name"`
	Password string         `json:"password" binding:"required"`
	Grants   []grantRequest `json:"grants" binding:"required,min=1"`
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := h.authService.CreateUser(c.Request.Context(), req.Email, req.Name, req.Password, toGrants(req.Grants))
	if err != nil {
		h.log.Warn("CreateUser failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user": user})
}

func toGrants(reqs []grantRequest) []services.Grant {
	out := make([]services.Grant, 0, len(reqs))
	for _, g := range reqs {
		out = append(out, services.Grant{CompanyID: g.CompanyID, Role: g.Role})
	}
	return out
}
