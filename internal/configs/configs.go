/*
Package configs is responsible for loading and parsing the application's configuration settings.

All settings come from environment variables (optionally seeded from a .env file by the
entry point), with development-friendly defaults and validation for anything the server
cannot run without.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"emclicker/internal/app/storage"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string
	AdminPass      string

	// Persistence Settings
	DataFile string

	// Static / Upload Settings
	PublicDir      string
	StorageBackend string
	UploadDir      string

	// S3 Storage Settings (only required when StorageBackend is "s3")
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type
// conversions and validation. It returns a pointer to the AppConfig struct and any error.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	adminPass := os.Getenv("ADMIN_PASS")
	if cfg.Environment == "development" {
		if adminPass == "" {
			adminPass = "change_me"
		}
	} else {
		if adminPass == "" {
			return nil, fmt.Errorf("ADMIN_PASS environment variable is required in %s environment for security", cfg.Environment)
		}
	}
	cfg.AdminPass = adminPass

	// --- Persistence Settings ---
	cfg.DataFile = os.Getenv("DATA_FILE")
	if cfg.DataFile == "" {
		cfg.DataFile = "data.json"
	}

	// --- Static / Upload Settings ---
	cfg.PublicDir = os.Getenv("PUBLIC_DIR")
	if cfg.PublicDir == "" {
		cfg.PublicDir = "public"
	}

	cfg.StorageBackend = os.Getenv("STORAGE_BACKEND")
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = storage.BackendLocal
	}

	cfg.UploadDir = os.Getenv("UPLOAD_DIR")
	if cfg.UploadDir == "" {
		cfg.UploadDir = "public/uploads"
	}

	// --- S3 Storage Settings ---
	if cfg.StorageBackend == storage.BackendS3 {
		cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
		if cfg.S3BucketName == "" {
			return nil, fmt.Errorf("S3_BUCKET_NAME environment variable is required for S3 storage connection")
		}

		cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
		if cfg.S3Endpoint == "" {
			return nil, fmt.Errorf("S3_ENDPOINT environment variable is required for S3 storage connection")
		}

		cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
		if cfg.S3AccessKeyID == "" {
			return nil, fmt.Errorf("S3_ACCESS_KEY_ID environment variable is required for S3 authentication")
		}

		cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
		if cfg.S3SecretAccessKey == "" {
			return nil, fmt.Errorf("S3_SECRET_ACCESS_KEY environment variable is required for S3 authentication")
		}

		cfg.S3PublicBaseURL = os.Getenv("S3_PUBLIC_BASE_URL")
	}

	return cfg, nil
}

// StorageConfig maps the loaded settings onto the storage backend configuration.
func (c *AppConfig) StorageConfig() storage.Config {
	return storage.Config{
		Backend:           c.StorageBackend,
		LocalDir:          c.UploadDir,
		S3BucketName:      c.S3BucketName,
		S3Endpoint:        c.S3Endpoint,
		S3AccessKeyID:     c.S3AccessKeyID,
		S3SecretAccessKey: c.S3SecretAccessKey,
		S3PublicBaseURL:   c.S3PublicBaseURL,
	}
}
