package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application settings, loaded from environment
// variables with sensible defaults. A .env file in the working
// directory is loaded first when present.
type Config struct {
	// File constraints
	MaxPDFSizeMB      int
	AllowedExtensions []string

	// Section detection
	MinSectionLength int
	MaxSectionLength int
	HeaderFontRatio  float64

	// Quality thresholds
	HighQualityThreshold   float64
	MediumQualityThreshold float64

	// Storage paths
	DataDir   string
	UploadDir string
	DBPath    string
}

// Load builds a Config from the environment. A .env file is loaded if
// one exists; real environment variables take precedence over it.
func Load() (*Config, error) {
	// godotenv.Load never overrides variables already set.
	_ = godotenv.Load()

	cfg := &Config{
		MaxPDFSizeMB:           envInt("PAPERIQ_MAX_PDF_SIZE_MB", 50),
		AllowedExtensions:      envList("PAPERIQ_ALLOWED_EXTENSIONS", []string{".pdf"}),
		MinSectionLength:       envInt("PAPERIQ_MIN_SECTION_LENGTH", 50),
		MaxSectionLength:       envInt("PAPERIQ_MAX_SECTION_LENGTH", 50000),
		HeaderFontRatio:        envFloat("PAPERIQ_HEADER_FONT_RATIO", 1.2),
		HighQualityThreshold:   envFloat("PAPERIQ_HIGH_QUALITY_THRESHOLD", 0.75),
		MediumQualityThreshold: envFloat("PAPERIQ_MEDIUM_QUALITY_THRESHOLD", 0.5),
	}

	dataDir := os.Getenv("PAPERIQ_DATA_DIR")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".paperiq")
	}
	cfg.DataDir = dataDir
	cfg.UploadDir = filepath.Join(dataDir, "uploads")
	cfg.DBPath = filepath.Join(dataDir, "paperiq.db")

	if err := cfg.ensureDirectories(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MaxPDFSizeBytes returns the maximum allowed PDF size in bytes.
func (c *Config) MaxPDFSizeBytes() int64 {
	return int64(c.MaxPDFSizeMB) * 1024 * 1024
}

// ExtensionAllowed reports whether a filename extension is accepted.
func (c *Config) ExtensionAllowed(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range c.AllowedExtensions {
		if ext == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}

func (c *Config) ensureDirectories() error {
	for _, dir := range []string{c.DataDir, c.UploadDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
