package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/envutil"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.GetEnv("POSTGRES_HOST", "localhost", log)
	port := envutil.GetEnv("POSTGRES_PORT", "5432", log)
	user := envutil.GetEnv("POSTGRES_USER", "postgres", log)
	password := envutil.GetEnv("POSTGRES_PASSWORD", "", log)
	name := envutil.GetEnv("POSTGRES_NAME", "studio", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(models()...); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	for _, fk := range foreignKeys {
		drop := fmt.Sprintf(`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, fk.table, fk.name)
		if err := s.db.Exec(drop).Error; err != nil {
			return fmt.Errorf("failed to reset %s: %w", fk.name, err)
		}
		if err := s.db.Exec(fk.ddl).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// models lists every table in migration order. Shared with the test harness
// so both schemas stay in lockstep.
func models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.UserToken{},
		&domain.Company{},
		&domain.UserCompany{},
		&domain.Client{},
		&domain.CaseCategory{},
		&domain.Case{},
		&domain.CaseBlock{},
		&domain.CaseTemplate{},
		&domain.MediaAsset{},
	}
}

type foreignKey struct {
	name  string
	table string
	ddl   string
}

var foreignKeys = []foreignKey{
	{
		name:  "fk_user_token_user_id",
		table: "user_token",
		ddl: `ALTER TABLE "user_token"
			ADD CONSTRAINT "fk_user_token_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE`,
	},
	{
		name:  "fk_user_company_user_id",
		table: "user_company",
		ddl: `ALTER TABLE "user_company"
			ADD CONSTRAINT "fk_user_company_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE`,
	},
	{
		name:  "fk_user_company_company_id",
		table: "user_company",
		ddl: `ALTER TABLE "user_company"
			ADD CONSTRAINT "fk_user_company_company_id"
			FOREIGN KEY ("company_id") REFERENCES "company"("id")
			ON DELETE CASCADE`,
	},
	{
		name:  "fk_case_company_id",
		table: "case",
		ddl: `ALTER TABLE "case"
			ADD CONSTRAINT "fk_case_company_id"
			FOREIGN KEY ("company_id") REFERENCES "company"("id")
			ON DELETE CASCADE`,
	},
	{
		name:  "fk_case_block_case_id",
		table: "case_block",
		ddl: `ALTER TABLE "case_block"
			ADD CONSTRAINT "fk_case_block_case_id"
			FOREIGN KEY ("case_id") REFERENCES "case"("id")
			ON DELETE CASCADE`,
	},
	{
		name:  "fk_case_template_company_id",
		table: "case_template",
		ddl: `ALTER TABLE "case_template"
			ADD CONSTRAINT "fk_case_template_company_id"
			FOREIGN KEY ("company_id") REFERENCES "company"("id")
			ON DELETE CASCADE`,
	},
	{
		name:  "fk_media_asset_company_id",
		table: "media_asset",
		ddl: `ALTER TABLE "media_asset"
			ADD CONSTRAINT "fk_media_asset_company_id"
			FOREIGN KEY ("company_id") REFERENCES "company"("id")
			ON DELETE CASCADE`,
	},
}

// Models exposes the schema set for AutoMigrate in test databases.
func Models() []interface{} { return models() }
