package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/http"
	httpH "github.com/onmx/studio-backend/internal/http/handlers"
	httpMW "github.com/onmx/studio-backend/internal/http/middleware"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	User      *httpH.UserHandler
	Company   *httpH.CompanyHandler
	Case      *httpH.CaseHandler
	CaseBlock *httpH.CaseBlockHandler
	Client    *httpH.ClientHandler
	Category  *httpH.CategoryHandler
	Media     *httpH.MediaHandler
	Template  *httpH.TemplateHandler
	Webhook   *httpH.WebhookHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services, repos Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Auth:      httpH.NewAuthHandler(log, services.Auth),
		User:      httpH.NewUserHandler(log, repos.User),
		Company:   httpH.NewCompanyHandler(log, services.Company),
		Case:      httpH.NewCaseHandler(log, services.Case),
		CaseBlock: httpH.NewCaseBlockHandler(log, services.CaseBlock),
		Client:    httpH.NewClientHandler(log, services.Client),
		Category:  httpH.NewCategoryHandler(log, services.Category),
		Media:     httpH.NewMediaHandler(log, services.Media),
		Template:  httpH.NewTemplateHandler(log, services.Template),
		Webhook:   httpH.NewWebhookHandler(log, services.Media),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log: log,

		AuthMiddleware: middleware.Auth,

		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		UserHandler:      handlers.User,
		CompanyHandler:   handlers.Company,
		CaseHandler:      handlers.Case,
		CaseBlockHandler: handlers.CaseBlock,
		ClientHandler:    handlers.Client,
		CategoryHandler:  handlers.Category,
		MediaHandler:     handlers.Media,
		TemplateHandler:  handlers.Template,
		WebhookHandler:   handlers.Webhook,
	})
}
