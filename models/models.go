package models

import (
	"strings"
	"time"
)

// SectionKind identifies a canonical research paper section.
type SectionKind string

const (
	KindAbstract     SectionKind = "abstract"
	KindIntroduction SectionKind = "introduction"
	KindMethodology  SectionKind = "methodology"
	KindResults      SectionKind = "results"
	KindDiscussion   SectionKind = "discussion"
	KindConclusion   SectionKind = "conclusion"
	KindReferences   SectionKind = "references"
	KindUnknown      SectionKind = "unknown"
)

// ParseSectionKind converts a string to a SectionKind.
// Matching is case-insensitive and ignores surrounding whitespace;
// unrecognized values map to KindUnknown.
func ParseSectionKind(value string) SectionKind {
	switch SectionKind(strings.ToLower(strings.TrimSpace(value))) {
	case KindAbstract:
		return KindAbstract
	case KindIntroduction:
		return KindIntroduction
	case KindMethodology:
		return KindMethodology
	case KindResults:
		return KindResults
	case KindDiscussion:
		return KindDiscussion
	case KindConclusion:
		return KindConclusion
	case KindReferences:
		return KindReferences
	default:
		return KindUnknown
	}
}

// AllExpectedKinds returns every section kind a complete paper is
// expected to contain, excluding KindUnknown. Its length is the
// denominator for completeness scoring.
func AllExpectedKinds() []SectionKind {
	return []SectionKind{
		KindAbstract,
		KindIntroduction,
		KindMethodology,
		KindResults,
		KindDiscussion,
		KindConclusion,
		KindReferences,
	}
}

// TextBlock is a positioned run of text produced by PDF extraction,
// carrying the layout information used for header detection.
type TextBlock struct {
	Text       string  `json:"text"`
	X0         float64 `json:"x0"` // left
	Y0         float64 `json:"y0"` // top
	X1         float64 `json:"x1"` // right
	Y1         float64 `json:"y1"` // bottom
	PageNumber int     `json:"page_number"` // 1-indexed
	FontSize   float64 `json:"font_size"`
	FontName   string  `json:"font_name,omitempty"`
	Bold       bool    `json:"is_bold"`
	Italic     bool    `json:"is_italic"`
}

// Width returns the horizontal extent of the block.
func (b TextBlock) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the block.
func (b TextBlock) Height() float64 { return b.Y1 - b.Y0 }

// CenterX returns the horizontal center of the block.
func (b TextBlock) CenterX() float64 { return (b.X0 + b.X1) / 2 }

// Section is one detected section of a paper.
type Section struct {
	ID            int64       `json:"id,omitempty"`
	PaperID       int64       `json:"paper_id,omitempty"`
	Kind          SectionKind `json:"section_type"`
	Content       string      `json:"content"`
	Confidence    float64     `json:"confidence"`
	StartPosition int         `json:"start_position"` // character offset in the full text
	EndPosition   int         `json:"end_position"`
	WordCount     int         `json:"word_count"`
}

// NewSection builds a Section and computes the word count once from the
// content. The count is never recomputed, even if callers later shorten
// the content for display.
func NewSection(kind SectionKind, content string, confidence float64, start, end int) Section {
	return Section{
		Kind:          kind,
		Content:       content,
		Confidence:    confidence,
		StartPosition: start,
		EndPosition:   end,
		WordCount:     len(strings.Fields(content)),
	}
}

// ConfidenceLevel maps the numeric confidence to a coarse label.
func (s Section) ConfidenceLevel() string {
	switch {
	case s.Confidence >= 0.8:
		return "high"
	case s.Confidence >= 0.6:
		return "medium"
	case s.Confidence >= 0.5:
		return "low"
	default:
		return "very_low"
	}
}

// Preview returns the first 200 characters of the section content.
func (s Section) Preview() string {
	if len(s.Content) <= 200 {
		return s.Content
	}
	return s.Content[:197] + "..."
}

// Quality levels derived from the detection quality score.
const (
	QualityNone   = "none"
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
)

// DetectionQuality is the paper-level quality assessment computed from
// the detected section list.
type DetectionQuality struct {
	Score float64 `json:"quality_score"`
	Level string  `json:"quality_level"`
}

// ProcessingStatus tracks a paper through the ingestion pipeline.
type ProcessingStatus string

const (
	StatusUploaded   ProcessingStatus = "uploaded"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// Paper is the complete representation of an ingested research paper.
type Paper struct {
	ID            int64            `json:"id,omitempty"`
	Filename      string           `json:"filename"`
	Title         string           `json:"title,omitempty"`
	UploadDate    time.Time        `json:"upload_date"`
	PageCount     int              `json:"page_count"`
	FileSizeBytes int64            `json:"file_size_bytes"`
	Status        ProcessingStatus `json:"status"`
	FilePath      string           `json:"file_path,omitempty"`

	Sections []Section        `json:"sections,omitempty"`
	FullText string           `json:"-"`
	Quality  DetectionQuality `json:"quality"`
}

// FileSizeMB returns the paper's file size in megabytes.
func (p *Paper) FileSizeMB() float64 {
	return float64(p.FileSizeBytes) / (1024 * 1024)
}

// SectionByKind returns the section of the given kind, or nil if the
// paper does not contain one.
func (p *Paper) SectionByKind(kind SectionKind) *Section {
	for i := range p.Sections {
		if p.Sections[i].Kind == kind {
			return &p.Sections[i]
		}
	}
	return nil
}

// MissingKinds returns the expected section kinds absent from the paper.
func (p *Paper) MissingKinds() []SectionKind {
	var missing []SectionKind
	for _, kind := range AllExpectedKinds() {
		if p.SectionByKind(kind) == nil {
			missing = append(missing, kind)
		}
	}
	return missing
}

// PaperInfo is a summary row for listing stored papers.
type PaperInfo struct {
	ID           int64            `json:"id"`
	Filename     string           `json:"filename"`
	Title        string           `json:"title,omitempty"`
	UploadDate   time.Time        `json:"upload_date"`
	PageCount    int              `json:"page_count"`
	SectionCount int              `json:"section_count"`
	Status       ProcessingStatus `json:"status"`
	QualityScore float64          `json:"quality_score"`
	QualityLevel string           `json:"quality_level"`
}

// SourceInfo describes where a paper PDF came from.
type SourceInfo struct {
	ZoteroID string `json:"zotero_id,omitempty"`
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// ValidationCheck is a single validation result.
type ValidationCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "pass", "warning", or "fail"
	Message string `json:"message"`
}

// ValidationReport collects validation checks for a parsed paper along
// with the overall quality assessment.
type ValidationReport struct {
	Checks       []ValidationCheck `json:"checks"`
	QualityScore float64           `json:"quality_score"`
	QualityLevel string            `json:"quality_level"`
}

// AddCheck appends a validation check result to the report.
func (r *ValidationReport) AddCheck(name, status, message string) {
	r.Checks = append(r.Checks, ValidationCheck{Name: name, Status: status, Message: message})
}

// PassCount returns the number of passed checks.
func (r *ValidationReport) PassCount() int { return r.countStatus("pass") }

// WarningCount returns the number of warnings.
func (r *ValidationReport) WarningCount() int { return r.countStatus("warning") }

// FailCount returns the number of failed checks.
func (r *ValidationReport) FailCount() int { return r.countStatus("fail") }

func (r *ValidationReport) countStatus(status string) int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == status {
			n++
		}
	}
	return n
}
