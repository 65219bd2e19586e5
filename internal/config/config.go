package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Backend selectors. The record store and blob store are picked
// independently so the console can run against local files, a REST mock
// or a real document+object store without touching handler code.
const (
	RecordBackendDatabase = "database"
	RecordBackendFile     = "file"
	RecordBackendREST     = "rest"

	BlobBackendS3     = "s3"
	BlobBackendDisk   = "disk"
	BlobBackendMemory = "memory"
)

type Config struct {
	Addr   string `env:"ADDR" envDefault:":8080"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	RecordBackend string `env:"RECORD_BACKEND" envDefault:"database"`
	BlobBackend   string `env:"BLOB_BACKEND" envDefault:"memory"`

	// database record backend
	DatabaseURL string `env:"DATABASE_URL" envDefault:"admin.db"`

	// file record backend
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// rest record backend
	RESTBaseURL string `env:"REST_BASE_URL"`

	// s3 blob backend (MinIO-compatible)
	S3Region        string        `env:"S3_REGION"`
	S3Bucket        string        `env:"S3_BUCKET"`
	S3Endpoint      string        `env:"S3_ENDPOINT"`
	S3AccessKey     string        `env:"S3_ACCESS_KEY"`
	S3SecretKey     string        `env:"S3_SECRET_KEY"`
	S3PublicBaseURL string        `env:"S3_PUBLIC_BASE_URL"` // set when the bucket serves public objects
	S3SignTTL       time.Duration `env:"S3_SIGN_TTL" envDefault:"1h"`

	// disk blob backend
	UploadDir  string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	StaticBase string `env:"STATIC_BASE" envDefault:"/static/uploads"`

	// admin gate
	AdminUsername     string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"` // bcrypt, wins over ADMIN_PASSWORD
	SessionSecret     string        `env:"SESSION_SECRET" envDefault:"change-me-session-secret"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.RecordBackend {
	case RecordBackendDatabase, RecordBackendFile:
	case RecordBackendREST:
		if cfg.RESTBaseURL == "" {
			return nil, fmt.Errorf("REST_BASE_URL is required for RECORD_BACKEND=rest")
		}
	default:
		return nil, fmt.Errorf("unknown RECORD_BACKEND %q", cfg.RecordBackend)
	}

	switch cfg.BlobBackend {
	case BlobBackendDisk, BlobBackendMemory:
	case BlobBackendS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for BLOB_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("unknown BLOB_BACKEND %q", cfg.BlobBackend)
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}

	return cfg, nil
}
