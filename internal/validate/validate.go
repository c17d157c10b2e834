// Package validate checks PDF files before parsing and section content
// after extraction. Results come back as reports of named checks rather
// than bare errors, so callers can distinguish hard failures from
// warnings worth surfacing.
package validate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/paperiq/paperiq/internal/config"
	"github.com/paperiq/paperiq/models"
)

// Check statuses.
const (
	StatusPass    = "pass"
	StatusWarning = "warning"
	StatusFail    = "fail"
)

var pdfMagic = []byte("%PDF-")

// minContentWords is the fewest words a section can have and still be
// considered real content rather than extraction noise.
const minContentWords = 5

// minPrintableRatio is the lowest acceptable share of printable runes
// in section content before it is flagged as likely garbled.
const minPrintableRatio = 0.85

// Validator runs file and content checks against configured limits.
type Validator struct {
	cfg *config.Config
}

// New creates a Validator for the given configuration.
func New(cfg *config.Config) *Validator {
	return &Validator{cfg: cfg}
}

// PDFFile validates that the file at path is a readable PDF within the
// configured size limit. Any failed check makes the file unusable.
func (v *Validator) PDFFile(path string) *models.ValidationReport {
	report := &models.ValidationReport{}

	info, err := os.Stat(path)
	if err != nil {
		report.AddCheck("file_exists", StatusFail, fmt.Sprintf("cannot stat %s: %v", path, err))
		return report
	}
	if info.IsDir() {
		report.AddCheck("file_exists", StatusFail, fmt.Sprintf("%s is a directory", path))
		return report
	}
	report.AddCheck("file_exists", StatusPass, "file exists")

	ext := strings.ToLower(filepath.Ext(path))
	if !v.cfg.ExtensionAllowed(ext) {
		report.AddCheck("file_extension", StatusFail, fmt.Sprintf("extension %q is not allowed", ext))
	} else {
		report.AddCheck("file_extension", StatusPass, fmt.Sprintf("extension %s accepted", ext))
	}

	switch {
	case info.Size() == 0:
		report.AddCheck("file_size", StatusFail, "file is empty")
	case info.Size() > v.cfg.MaxPDFSizeBytes():
		report.AddCheck("file_size", StatusFail,
			fmt.Sprintf("file is %.1f MB, maximum is %d MB", float64(info.Size())/(1024*1024), v.cfg.MaxPDFSizeMB))
	default:
		report.AddCheck("file_size", StatusPass, fmt.Sprintf("%d bytes", info.Size()))
	}

	f, err := os.Open(path)
	if err != nil {
		report.AddCheck("pdf_signature", StatusFail, fmt.Sprintf("cannot open file: %v", err))
		return report
	}
	defer f.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := f.Read(header); err != nil || !bytes.HasPrefix(header, pdfMagic) {
		report.AddCheck("pdf_signature", StatusFail, "file does not start with %PDF-")
	} else {
		report.AddCheck("pdf_signature", StatusPass, "PDF signature present")
	}

	return report
}

// SectionContent validates extracted section content: length within the
// configured bounds, a minimum word count, and a mostly printable
// character stream. Oversized content is a warning, not a failure.
func (v *Validator) SectionContent(content string) *models.ValidationReport {
	report := &models.ValidationReport{}
	trimmed := strings.TrimSpace(content)

	switch {
	case len(trimmed) < v.cfg.MinSectionLength:
		report.AddCheck("content_length", StatusFail,
			fmt.Sprintf("content is %d chars, minimum is %d", len(trimmed), v.cfg.MinSectionLength))
	case len(trimmed) > v.cfg.MaxSectionLength:
		report.AddCheck("content_length", StatusWarning,
			fmt.Sprintf("content is %d chars, expected at most %d", len(trimmed), v.cfg.MaxSectionLength))
	default:
		report.AddCheck("content_length", StatusPass, fmt.Sprintf("%d chars", len(trimmed)))
	}

	if words := len(strings.Fields(trimmed)); words < minContentWords {
		report.AddCheck("word_count", StatusFail,
			fmt.Sprintf("only %d words, minimum is %d", words, minContentWords))
	} else {
		report.AddCheck("word_count", StatusPass, fmt.Sprintf("%d words", words))
	}

	if ratio := printableRatio(trimmed); ratio < minPrintableRatio {
		report.AddCheck("printable_ratio", StatusWarning,
			fmt.Sprintf("only %.0f%% printable characters, content may be garbled", ratio*100))
	} else {
		report.AddCheck("printable_ratio", StatusPass, "content is printable text")
	}

	return report
}

// printableRatio returns the share of printable runes in text. Private
// use area runes, the replacement character, and control characters
// other than whitespace count against it.
func printableRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	total := 0
	printable := 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	if r >= 0xE000 && r <= 0xF8FF {
		return true
	}
	if r == 0xFFFD {
		return true
	}
	if r < 0x0020 && r != '\n' && r != '\r' && r != '\t' {
		return true
	}
	return false
}
