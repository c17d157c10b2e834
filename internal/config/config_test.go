package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PAPERIQ_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.MaxPDFSizeMB != 50 {
		t.Errorf("MaxPDFSizeMB = %d, want 50", cfg.MaxPDFSizeMB)
	}
	if cfg.MinSectionLength != 50 {
		t.Errorf("MinSectionLength = %d, want 50", cfg.MinSectionLength)
	}
	if cfg.HeaderFontRatio != 1.2 {
		t.Errorf("HeaderFontRatio = %v, want 1.2", cfg.HeaderFontRatio)
	}
	if cfg.HighQualityThreshold != 0.75 || cfg.MediumQualityThreshold != 0.5 {
		t.Errorf("quality thresholds = (%v, %v), want (0.75, 0.5)",
			cfg.HighQualityThreshold, cfg.MediumQualityThreshold)
	}
	if filepath.Dir(cfg.DBPath) != cfg.DataDir {
		t.Errorf("DBPath %s is not under DataDir %s", cfg.DBPath, cfg.DataDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PAPERIQ_DATA_DIR", t.TempDir())
	t.Setenv("PAPERIQ_MAX_PDF_SIZE_MB", "10")
	t.Setenv("PAPERIQ_MIN_SECTION_LENGTH", "100")
	t.Setenv("PAPERIQ_ALLOWED_EXTENSIONS", ".pdf, .PDF")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.MaxPDFSizeMB != 10 {
		t.Errorf("MaxPDFSizeMB = %d, want 10", cfg.MaxPDFSizeMB)
	}
	if cfg.MinSectionLength != 100 {
		t.Errorf("MinSectionLength = %d, want 100", cfg.MinSectionLength)
	}
	if cfg.MaxPDFSizeBytes() != 10*1024*1024 {
		t.Errorf("MaxPDFSizeBytes() = %d, want %d", cfg.MaxPDFSizeBytes(), 10*1024*1024)
	}
}

func TestExtensionAllowed(t *testing.T) {
	cfg := &Config{AllowedExtensions: []string{".pdf"}}

	tests := []struct {
		ext  string
		want bool
	}{
		{".pdf", true},
		{".PDF", true},
		{".docx", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := cfg.ExtensionAllowed(tt.ext); got != tt.want {
			t.Errorf("ExtensionAllowed(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}
