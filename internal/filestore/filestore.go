// Package filestore manages uploaded PDF files on disk. Stored names
// combine a sanitized version of the original filename with a UUID
// suffix so repeated uploads of the same paper never collide.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore saves and removes paper files under a single directory.
type FileStore struct {
	dir string
}

// Stats summarizes the contents of the store directory.
type Stats struct {
	FileCount  int   `json:"file_count"`
	TotalBytes int64 `json:"total_bytes"`
}

// New creates a FileStore rooted at dir, creating it if needed.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's root directory.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// Save writes data under a unique name derived from filename and
// returns the full path of the stored file.
func (fs *FileStore) Save(filename string, data []byte) (string, error) {
	base := sanitizeFilename(filename)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	stored := fmt.Sprintf("%s_%s%s", stem, uuid.NewString()[:8], ext)
	path := filepath.Join(fs.dir, stored)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", stored, err)
	}
	return path, nil
}

// Delete removes a stored file. Paths outside the store directory are
// rejected.
func (fs *FileStore) Delete(path string) error {
	cleaned := filepath.Clean(path)
	if filepath.Dir(cleaned) != filepath.Clean(fs.dir) {
		return fmt.Errorf("path %s is outside the store directory", path)
	}
	if err := os.Remove(cleaned); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// Stats reports how many files the store holds and their combined size.
func (fs *FileStore) Stats() (Stats, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return Stats{}, fmt.Errorf("reading upload directory: %w", err)
	}

	var stats Stats
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stats.FileCount++
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}

// sanitizeFilename strips directory components and replaces characters
// that are unsafe in filenames.
func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "upload.pdf"
	}

	var sb strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}

	out := strings.Trim(sb.String(), "._")
	if out == "" {
		return "upload.pdf"
	}
	return out
}
