package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Ingest   IngestConfig
	Pipeline PipelineConfig
	Label    LabelConfig
}

// IngestConfig holds document-ingestion configuration.
type IngestConfig struct {
	// AllowedExts is a comma-separated extension allowlist (sans dot).
	AllowedExts string
	SkipHidden  bool
}

// PipelineConfig holds parse-pipeline configuration.
type PipelineConfig struct {
	// Workers is the number of documents parsed concurrently. 1 = sequential.
	Workers int
}

// LabelConfig holds label-layout configuration.
type LabelConfig struct {
	// MaxCustomizationLines caps the visible bulleted lines on a label.
	MaxCustomizationLines int
	// CatalogOverlayPath optionally points at a YAML file extending the
	// built-in SKU prefix table and thread-color dictionary.
	CatalogOverlayPath string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			AllowedExts: getEnv("TOWEL_ALLOWED_EXTS", "txt"),
			SkipHidden:  getEnvAsBool("TOWEL_SKIP_HIDDEN", true),
		},
		Pipeline: PipelineConfig{
			Workers: getEnvAsInt("TOWEL_WORKERS", 1),
		},
		Label: LabelConfig{
			MaxCustomizationLines: getEnvAsInt("TOWEL_LABEL_MAX_LINES", 6),
			CatalogOverlayPath:    getEnv("TOWEL_CATALOG_OVERLAY", ""),
		},
	}
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.Pipeline.Workers < 1 {
		return NewAppError("CONFIG_ERROR", "TOWEL_WORKERS must be >= 1", ErrInvalidInput)
	}
	if c.Label.MaxCustomizationLines < 1 {
		return NewAppError("CONFIG_ERROR", "TOWEL_LABEL_MAX_LINES must be >= 1", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
