package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/services"
	"github.com/onmx/studio-backend/internal/workers"
)

type Services struct {
	Auth      services.AuthService
	Company   services.CompanyService
	Case      services.CaseService
	CaseBlock services.CaseBlockService
	Client    services.ClientService
	Category  services.CategoryService
	Media     services.MediaService
	Template  services.TemplateService

	Bucket    services.BucketService
	MediaSync *workers.MediaSyncWorker
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	bucketService, err := services.NewBucketService(log)
	if err != nil {
		return Services{}, fmt.Errorf("init bucket service: %w", err)
	}

	authService := services.NewAuthService(
		db, log,
		repos.User,
		repos.UserToken,
		repos.Company,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	companyService := services.NewCompanyService(db, log, repos.Company)
	caseService := services.NewCaseService(db, log, repos.Case, repos.CaseBlock, repos.Company, bucketService)
	caseBlockService := services.NewCaseBlockService(db, log, repos.Case, repos.CaseBlock, repos.Company, bucketService)
	clientService := services.NewClientService(db, log, repos.Client, repos.Company)
	categoryService := services.NewCategoryService(db, log, repos.Category, repos.Company)
	mediaService := services.NewMediaService(db, log, repos.Media, repos.Company, bucketService, clients.Transcoder, clients.MediaBus)
	templateService := services.NewTemplateService(db, log, repos.Template, repos.CaseBlock, repos.Case, repos.Company)

	var mediaSync *workers.MediaSyncWorker
	if clients.Transcoder != nil {
		mediaSync = workers.NewMediaSyncWorker(log, repos.Media, mediaService)
	}

	return Services{
		Auth:      authService,
		Company:   companyService,
		Case:      caseService,
		CaseBlock: caseBlockService,
		Client:    clientService,
		Category:  categoryService,
		Media:     mediaService,
		Template:  templateService,
		Bucket:    bucketService,
		MediaSync: mediaSync,
	}, nil
}
