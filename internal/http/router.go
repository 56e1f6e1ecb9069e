package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/onmx/studio-backend/internal/http/handlers"
	httpMW "github.com/onmx/studio-backend/internal/http/middleware"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	UserHandler      *httpH.UserHandler
	CompanyHandler   *httpH.CompanyHandler
	CaseHandler      *httpH.CaseHandler
	CaseBlockHandler *httpH.CaseBlockHandler
	ClientHandler    *httpH.ClientHandler
	CategoryHandler  *httpH.CategoryHandler
	MediaHandler     *httpH.MediaHandler
	TemplateHandler  *httpH.TemplateHandler
	WebhookHandler   *httpH.WebhookHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("studio-backend"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
		}
		if cfg.WebhookHandler != nil {
			api.POST("/webhooks/transcoder", cfg.WebhookHandler.Transcoder)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
			protected.POST("/users/invite", cfg.AuthHandler.InviteUser)
			protected.POST("/users", cfg.AuthHandler.CreateUser)
		}

		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		if cfg.CompanyHandler != nil {
			protected.POST("/companies", cfg.CompanyHandler.Create)
			protected.GET("/companies", cfg.CompanyHandler.ListMine)
			protected.GET("/companies/:companyID", cfg.CompanyHandler.Get)
			protected.PATCH("/companies/:companyID", cfg.CompanyHandler.Update)
		}

		if cfg.CaseHandler != nil {
			protected.GET("/companies/:companyID/cases", cfg.CaseHandler.List)
			protected.POST("/companies/:companyID/cases", cfg.CaseHandler.Create)
			protected.GET("/companies/:companyID/cases/:caseID", cfg.CaseHandler.Get)
			protected.PATCH("/companies/:companyID/cases/:caseID", cfg.CaseHandler.Update)
			protected.DELETE("/companies/:companyID/cases/:caseID", cfg.CaseHandler.Delete)
			protected.POST("/companies/:companyID/cases/:caseID/duplicate", cfg.CaseHandler.Duplicate)
			protected.POST("/companies/:companyID/cases/:caseID/status", cfg.CaseHandler.SetStatus)
			protected.POST("/companies/:companyID/cases/:caseID/cover", cfg.CaseHandler.UploadCover)
		}

		if cfg.CaseBlockHandler != nil {
			protected.GET("/companies/:companyID/cases/:caseID/blocks", cfg.CaseBlockHandler.GetBlocks)
			protected.PUT("/companies/:companyID/cases/:caseID/blocks", cfg.CaseBlockHandler.Replace)
			protected.POST("/companies/:companyID/blocks/images", cfg.CaseBlockHandler.UploadImage)
		}

		if cfg.ClientHandler != nil {
			protected.GET("/companies/:companyID/clients", cfg.ClientHandler.List)
			protected.POST("/companies/:companyID/clients", cfg.ClientHandler.Create)
			protected.PATCH("/companies/:companyID/clients/:clientID", cfg.ClientHandler.Update)
			protected.DELETE("/companies/:companyID/clients/:clientID", cfg.ClientHandler.Delete)
		}

		if cfg.CategoryHandler != nil {
			protected.GET("/companies/:companyID/categories", cfg.CategoryHandler.List)
			protected.POST("/companies/:companyID/categories", cfg.CategoryHandler.Create)
			protected.PATCH("/companies/:companyID/categories/:categoryID", cfg.CategoryHandler.Update)
			protected.DELETE("/companies/:companyID/categories/:categoryID", cfg.CategoryHandler.Delete)
		}

		if cfg.MediaHandler != nil {
			protected.GET("/companies/:companyID/media", cfg.MediaHandler.List)
			protected.POST("/companies/:companyID/media/upload", cfg.MediaHandler.Upload)
			protected.POST("/companies/:companyID/media/videos", cfg.MediaHandler.CreateVideoUpload)
			protected.POST("/companies/:companyID/media/:assetID/sync", cfg.MediaHandler.Sync)
			protected.DELETE("/companies/:companyID/media/:assetID", cfg.MediaHandler.Delete)
		}

		if cfg.TemplateHandler != nil {
			protected.GET("/companies/:companyID/templates", cfg.TemplateHandler.List)
			protected.POST("/companies/:companyID/templates", cfg.TemplateHandler.Save)
			protected.GET("/companies/:companyID/templates/:templateID/blocks", cfg.TemplateHandler.Instantiate)
			protected.DELETE("/companies/:companyID/templates/:templateID", cfg.TemplateHandler.Delete)
		}
	}

	return r
}
