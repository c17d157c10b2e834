// Package extract pulls text and layout information out of PDF files.
// It parses page content streams directly so it can recover not just
// the running text but also per-block font metadata, which downstream
// section detection uses as a layout signal.
package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/paperiq/paperiq/internal/logger"
	"github.com/paperiq/paperiq/models"
)

// Result is the outcome of extracting a PDF.
type Result struct {
	// FullText is the document text with one line per text block.
	FullText string
	// Blocks are the positioned text blocks in document order.
	Blocks []models.TextBlock
	// PageCount is the number of pages in the document.
	PageCount int
	// Title is the first non-empty text line, truncated to 200 bytes.
	Title string
	// HasImages reports whether the document contains image XObjects.
	HasImages bool
}

// Extractor extracts text and layout from a document file.
type Extractor interface {
	Extract(path string) (*Result, error)
}

// PDFExtractor extracts text from PDF files via pdfcpu.
type PDFExtractor struct {
	log logger.Logger
}

// NewPDFExtractor creates a PDFExtractor with the given logger.
func NewPDFExtractor(log logger.Logger) *PDFExtractor {
	return &PDFExtractor{log: log}
}

// Extract reads and validates the PDF at path and returns its text and
// layout blocks. A structurally valid PDF with no extractable text
// yields a Result with an empty FullText, not an error; callers decide
// whether that is fatal.
func (e *PDFExtractor) Extract(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}

	result := &Result{
		PageCount: ctx.PageCount,
		HasImages: detectImageStreams(ctx),
	}

	var fullText strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		blocks := e.extractPageBlocks(ctx, pageNr)
		if len(blocks) == 0 {
			e.log.Debug("page %d of %s has no text content", pageNr, path)
			continue
		}

		result.Blocks = append(result.Blocks, blocks...)
		for _, b := range blocks {
			if fullText.Len() > 0 {
				fullText.WriteByte('\n')
			}
			fullText.WriteString(b.Text)
		}
	}

	result.FullText = fullText.String()
	result.Title = firstLine(result.FullText)

	e.log.Info("extracted %d pages, %d text blocks from %s", result.PageCount, len(result.Blocks), path)
	return result, nil
}

// extractPageBlocks scans one page's content stream for text blocks.
func (e *PDFExtractor) extractPageBlocks(ctx *model.Context, pageNr int) []models.TextBlock {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		e.log.Warn("extracting page %d content: %v", pageNr, err)
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return nil
	}
	return scanStream(data, pageNr)
}

// detectImageStreams checks if the PDF contains image XObjects.
func detectImageStreams(ctx *model.Context) bool {
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 200 {
			line = line[:200]
		}
		return line
	}
	return ""
}
