package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "videx"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageBackendFS = "fs"
	StorageBackendS3 = "s3"
)

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Catalog CatalogConfig
	Media   MediaConfig
	S3      S3Config
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.IsS3() && cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("VIDEX_S3_BUCKET is required when VIDEX_STORAGE_BACKEND=s3")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VIDEX_APP_ENV" default:"dev"`
	Port         string `envconfig:"VIDEX_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"VIDEX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VIDEX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	CORSOrigins []string `envconfig:"VIDEX_CORS_ORIGINS" default:"*"`
}

type StorageConfig struct {
	// Backend selects where uploaded media lives: "fs" or "s3".
	Backend string `envconfig:"VIDEX_STORAGE_BACKEND" default:"fs"`
	Root    string `envconfig:"VIDEX_STORAGE_ROOT" default:"data/uploads"`
}

func (s StorageConfig) IsS3() bool {
	return strings.EqualFold(s.Backend, StorageBackendS3)
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(s.Backend) {
	case StorageBackendFS, StorageBackendS3:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q", s.Backend)
}

type CatalogConfig struct {
	Path string `envconfig:"VIDEX_CATALOG_PATH" default:"data/catalog.json"`
}

type MediaConfig struct {
	// MaxUploadBytes is the hard ceiling for a single upload body. Default 2 GiB.
	MaxUploadBytes int64 `envconfig:"VIDEX_MAX_UPLOAD_BYTES" default:"2147483648"`
}

// S3Config targets any S3-compatible store. Credentials default to the SDK
// chain; static keys are only ever sourced from the environment.
type S3Config struct {
	Bucket          string `envconfig:"VIDEX_S3_BUCKET"`
	Region          string `envconfig:"VIDEX_S3_REGION" default:"us-east-1"`
	Endpoint        string `envconfig:"VIDEX_S3_ENDPOINT"`
	AccessKeyID     string `envconfig:"VIDEX_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"VIDEX_S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `envconfig:"VIDEX_S3_USE_PATH_STYLE" default:"false"`
	PartSizeBytes   int64  `envconfig:"VIDEX_S3_PART_SIZE_BYTES" default:"16777216"`
}
