// Package operations wires the ingestion pipeline together: fetching
// paper bytes, storing the file, extracting text and layout, detecting
// sections, scoring quality, and persisting the result.
package operations

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/paperiq/paperiq/internal/extract"
	"github.com/paperiq/paperiq/internal/fetch"
	"github.com/paperiq/paperiq/internal/filestore"
	"github.com/paperiq/paperiq/internal/logger"
	"github.com/paperiq/paperiq/internal/storage"
	"github.com/paperiq/paperiq/internal/validate"
	"github.com/paperiq/paperiq/models"
)

// SectionDetector detects sections in extracted text and scores the
// overall detection.
type SectionDetector interface {
	DetectSections(fullText string, blocks []models.TextBlock) []models.Section
	DetectionQuality(sections []models.Section) models.DetectionQuality
}

// Pipeline holds the components a paper passes through during
// ingestion.
type Pipeline struct {
	Store     storage.Store
	Files     *filestore.FileStore
	Extractor extract.Extractor
	Detector  SectionDetector
	Validator *validate.Validator
	Log       logger.Logger
}

// ParsePaper runs the full ingestion pipeline for a paper and returns
// the stored result. Raw bytes take precedence over the source; when
// rawData is nil the bytes are fetched from the source. A structurally
// valid PDF that yields no text at all fails fast rather than being
// stored as an empty paper.
func (p *Pipeline) ParsePaper(ctx context.Context, source models.SourceInfo, rawData []byte) (*models.Paper, error) {
	data := rawData
	if data == nil {
		var err error
		if data, err = fetch.GetData(ctx, source); err != nil {
			return nil, fmt.Errorf("failed to fetch paper: %w", err)
		}
	}

	filename := deriveFilename(source)

	filePath, err := p.Files.Save(filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	if report := p.Validator.PDFFile(filePath); report.FailCount() > 0 {
		p.discardFile(filePath)
		return nil, fmt.Errorf("invalid PDF %s: %s", filename, firstFailure(report))
	}

	result, err := p.Extractor.Extract(filePath)
	if err != nil {
		p.discardFile(filePath)
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	if result.FullText == "" {
		p.discardFile(filePath)
		return nil, errors.New("no text content found in PDF")
	}

	detected := p.Detector.DetectSections(result.FullText, result.Blocks)
	quality := p.Detector.DetectionQuality(detected)

	paper := &models.Paper{
		Filename:      filename,
		Title:         result.Title,
		PageCount:     result.PageCount,
		FileSizeBytes: int64(len(data)),
		Status:        models.StatusCompleted,
		FilePath:      filePath,
		Sections:      detected,
		FullText:      result.FullText,
		Quality:       quality,
	}

	if _, err := p.Store.SavePaper(ctx, paper); err != nil {
		p.discardFile(filePath)
		return nil, fmt.Errorf("failed to save paper: %w", err)
	}

	p.Log.Info("parsed %s: %d pages, %d sections, quality %s (%.2f)",
		filename, paper.PageCount, len(paper.Sections), quality.Level, quality.Score)

	return paper, nil
}

// GetOrParsePaper returns the stored paper for a source when one
// already exists, parsing it only when needed. Reuse is keyed on the
// derived filename; papers that previously failed are re-parsed.
func (p *Pipeline) GetOrParsePaper(ctx context.Context, source models.SourceInfo, rawData []byte) (*models.Paper, error) {
	filename := deriveFilename(source)

	if existing, err := p.Store.GetPaperByFilename(ctx, filename); err == nil {
		if existing.Status == models.StatusCompleted {
			p.Log.Debug("reusing stored paper %d for %s", existing.ID, filename)
			return existing, nil
		}
	}

	return p.ParsePaper(ctx, source, rawData)
}

// ValidatePaper builds a validation report for a stored paper: the
// quality assessment, per-section content checks, and a warning for
// each expected section kind the paper is missing.
func (p *Pipeline) ValidatePaper(paper *models.Paper) *models.ValidationReport {
	report := &models.ValidationReport{
		QualityScore: paper.Quality.Score,
		QualityLevel: paper.Quality.Level,
	}

	for _, sec := range paper.Sections {
		sub := p.Validator.SectionContent(sec.Content)
		for _, check := range sub.Checks {
			report.AddCheck(fmt.Sprintf("%s_%s", sec.Kind, check.Name), check.Status, check.Message)
		}
	}

	for _, kind := range paper.MissingKinds() {
		report.AddCheck(fmt.Sprintf("%s_present", kind), validate.StatusWarning,
			fmt.Sprintf("no %s section was detected", kind))
	}

	return report
}

func (p *Pipeline) discardFile(path string) {
	if err := p.Files.Delete(path); err != nil {
		p.Log.Warn("failed to remove %s: %v", path, err)
	}
}

// deriveFilename picks a stable filename for a source, used both for
// storage and for recognizing papers seen before.
func deriveFilename(source models.SourceInfo) string {
	if source.Filename != "" {
		return filepath.Base(source.Filename)
	}
	if source.URL != "" {
		if base := path.Base(strings.Split(source.URL, "?")[0]); base != "" && base != "." && base != "/" {
			if !strings.HasSuffix(strings.ToLower(base), ".pdf") {
				base += ".pdf"
			}
			return base
		}
	}
	if source.ZoteroID != "" {
		return "zotero_" + source.ZoteroID + ".pdf"
	}
	return "upload.pdf"
}

func firstFailure(report *models.ValidationReport) string {
	for _, check := range report.Checks {
		if check.Status == validate.StatusFail {
			return check.Message
		}
	}
	return "validation failed"
}
