package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/onmx/studio-backend/internal/pkg/envutil"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type Config struct {
	Port            string
	Environment     string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// fileConfig mirrors Config for the optional CONFIG_FILE yaml overlay. Only
// fields present in the file are applied, on top of the env-derived values.
type fileConfig struct {
	Port            string `yaml:"port"`
	Environment     string `yaml:"environment"`
	JWTSecretKey    string `yaml:"jwt_secret_key"`
	AccessTokenTTL  int    `yaml:"access_token_ttl"`
	RefreshTokenTTL int    `yaml:"refresh_token_ttl"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.GetEnv("PORT", "8080", log),
		Environment:     envutil.GetEnv("APP_ENV", "development", log),
		JWTSecretKey:    envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  time.Duration(envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second,
		RefreshTokenTTL: time.Duration(envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)) * time.Second,
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		applyConfigFile(&cfg, path, log)
	}
	return cfg
}

func applyConfigFile(cfg *Config, path string, log *logger.Logger) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Could not read config file, keeping env values", "path", path, "error", err)
		return
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		log.Warn("Could not parse config file, keeping env values", "path", path, "error", err)
		return
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if fc.JWTSecretKey != "" {
		cfg.JWTSecretKey = fc.JWTSecretKey
	}
	if fc.AccessTokenTTL > 0 {
		cfg.AccessTokenTTL = time.Duration(fc.AccessTokenTTL) * time.Second
	}
	if fc.RefreshTokenTTL > 0 {
		cfg.RefreshTokenTTL = time.Duration(fc.RefreshTokenTTL) * time.Second
	}
	log.Info("Applied config file overrides", "path", path)
}
