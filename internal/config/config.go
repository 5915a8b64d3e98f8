package config

import (
	"fmt"
	"log"
	"os"

	"fileshare-api/internal/utils"

	"github.com/joho/godotenv"
	"github.com/kerimovok/go-pkg-utils/config"
	"gopkg.in/yaml.v3"
)

// FileValidationConfig holds upload validation settings. MaxFileSize accepts
// human-readable sizes ("10MB"); the resolved byte count is filled in during
// LoadConfig.
type FileValidationConfig struct {
	MaxFileSize          string   `yaml:"max_file_size"`
	AllowedExtensions    []string `yaml:"allowed_extensions"`
	BlockedExtensions    []string `yaml:"blocked_extensions"`
	StrictMimeValidation bool     `yaml:"strict_mime_validation"`

	MaxFileSizeBytes int64 `yaml:"-"`
}

// LocalStorageConfig holds blob store settings.
type LocalStorageConfig struct {
	UploadDir  string `yaml:"upload_dir"`
	CreateDirs bool   `yaml:"create_dirs"`
}

// SharingConfig holds share-link lifecycle settings.
type SharingConfig struct {
	// RetentionDays is the fixed window between upload and expiry. It is
	// applied once at creation and never renewed.
	RetentionDays int `yaml:"retention_days"`
}

// StorageConfig holds the complete storage configuration.
type StorageConfig struct {
	Validation FileValidationConfig `yaml:"validation"`
	Storage    LocalStorageConfig   `yaml:"storage"`
	Sharing    SharingConfig        `yaml:"sharing"`
}

// MainConfig holds the root configuration.
type MainConfig struct {
	Storage StorageConfig `yaml:"storage"`
}

var (
	Config MainConfig
)

// LoadConfig loads the configuration from config/storage.yaml.
func LoadConfig() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if config.GetEnv("GO_ENV") != "production" {
			log.Println("Warning: Failed to load .env file")
		}
	}

	data, err := os.ReadFile("config/storage.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg MainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Storage.Validation.MaxFileSize == "" {
		cfg.Storage.Validation.MaxFileSize = "10MB"
	}
	cfg.Storage.Validation.MaxFileSizeBytes, err = utils.ParseSizeString(cfg.Storage.Validation.MaxFileSize)
	if err != nil {
		return fmt.Errorf("invalid max_file_size: %w", err)
	}

	if cfg.Storage.Sharing.RetentionDays <= 0 {
		cfg.Storage.Sharing.RetentionDays = 30
	}
	if cfg.Storage.Storage.UploadDir == "" {
		cfg.Storage.Storage.UploadDir = "./uploads"
	}

	Config = cfg

	log.Println("Storage configuration loaded successfully from config/storage.yaml")
	return nil
}

// GetConfig returns the current configuration.
func GetConfig() MainConfig {
	return Config
}
