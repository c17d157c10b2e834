// Package sections implements the section detection engine: it
// partitions research paper text into canonical sections (abstract,
// introduction, methodology, results, discussion, conclusion,
// references) with a confidence score per section and a paper-level
// quality score.
//
// Detection is a two-phase analysis. Regex patterns find header-like
// lines in the raw text, layout analysis finds short, large-font or
// bold text blocks, and agreeing signals are fused into single
// higher-confidence matches before content extraction.
//
// A Detector is stateless across invocations: it holds only the
// configuration and its collaborators, never per-document state, so a
// single instance may be used concurrently for different documents.
package sections

import (
	"sort"

	"github.com/paperiq/paperiq/internal/logger"
	"github.com/paperiq/paperiq/models"
)

// matchMethod records which signal produced a header match.
type matchMethod string

const (
	methodPattern  matchMethod = "pattern"
	methodLayout   matchMethod = "layout"
	methodCombined matchMethod = "combined"
)

// headerMatch is a hypothesis that the text at a given offset names the
// start of a section. Font metadata is only present on layout-derived
// matches.
type headerMatch struct {
	kind       models.SectionKind
	headerText string
	position   int
	confidence float64
	method     matchMethod
	fontSize   float64
	bold       bool
}

// Cleaner cleans the raw content span of a detected section. An error
// drops that section without affecting the rest of the run.
type Cleaner interface {
	CleanSection(text string) (string, error)
}

// Detector detects and extracts sections from research paper text.
type Detector struct {
	cfg     Config
	cleaner Cleaner
	log     logger.Logger
}

// NewDetector creates a Detector with the given configuration, section
// cleaner, and logger.
func NewDetector(cfg Config, cleaner Cleaner, log logger.Logger) *Detector {
	return &Detector{cfg: cfg, cleaner: cleaner, log: log}
}

// DetectSections finds and extracts all sections of a paper. Blocks are
// optional layout information; without them detection relies on text
// patterns alone. An empty fullText yields an empty result. The
// returned sections are ordered by ascending start position and contain
// at most one section per kind.
func (d *Detector) DetectSections(fullText string, blocks []models.TextBlock) []models.Section {
	if fullText == "" {
		return nil
	}

	patternMatches := d.patternMatch(fullText)
	layoutMatches := d.layoutAnalysis(fullText, blocks)

	matches := d.combineMatches(patternMatches, layoutMatches)
	matches = dedupeMatches(matches)

	if len(matches) == 0 {
		d.log.Warn("no section headers found in document")
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].position < matches[j].position
	})

	sections := d.extractContent(fullText, matches)

	for _, s := range sections {
		d.log.Info("detected %s section (confidence %.2f, %d words)", s.Kind, s.Confidence, s.WordCount)
	}

	return sections
}
