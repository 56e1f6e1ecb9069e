package app

import (
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/repos"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Company   repos.CompanyRepo
	Case      repos.CaseRepo
	CaseBlock repos.CaseBlockRepo
	Client    repos.ClientRepo
	Category  repos.CategoryRepo
	Media     repos.MediaRepo
	Template  repos.TemplateRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Company:   repos.NewCompanyRepo(db, log),
		Case:      repos.NewCaseRepo(db, log),
		CaseBlock: repos.NewCaseBlockRepo(db, log),
		Client:    repos.NewClientRepo(db, log),
		Category:  repos.NewCategoryRepo(db, log),
		Media:     repos.NewMediaRepo(db, log),
		Template:  repos.NewTemplateRepo(db, log),
	}
}
