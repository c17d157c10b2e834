package storage

import (
	"context"

	"github.com/paperiq/paperiq/models"
)

// Store defines the interface for persisting parsed papers and their
// detected sections.
type Store interface {
	// SavePaper stores a paper with its sections and returns the paper ID
	SavePaper(ctx context.Context, paper *models.Paper) (int64, error)

	// GetPaper retrieves a paper with all its sections by ID
	GetPaper(ctx context.Context, paperID int64) (*models.Paper, error)

	// GetPaperByFilename retrieves the most recently stored paper with the given filename
	GetPaperByFilename(ctx context.Context, filename string) (*models.Paper, error)

	// GetSections retrieves all sections of a paper ordered by start position
	GetSections(ctx context.Context, paperID int64) ([]models.Section, error)

	// GetSection retrieves a single section of a paper by kind
	GetSection(ctx context.Context, paperID int64, kind models.SectionKind) (*models.Section, error)

	// ListPapers returns summaries of all stored papers, newest first
	ListPapers(ctx context.Context) ([]models.PaperInfo, error)

	// UpdateStatus sets a paper's processing status
	UpdateStatus(ctx context.Context, paperID int64, status models.ProcessingStatus) error

	// DeletePaper removes a paper and all its sections
	DeletePaper(ctx context.Context, paperID int64) error

	// Close closes the database connection
	Close() error
}
