// Package textclean normalizes text extracted from PDFs: hyphenated
// line breaks, inline citation markers, whitespace runs, page
// artifacts, and typographic substitutions.
package textclean

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Inline citations: [1], [12], [1, 2, 3]
	citationNumericRe = regexp.MustCompile(`\[\d+(?:,\s*\d+)*\]`)
	// Inline citations: [Author et al., 2020]
	citationAuthorRe = regexp.MustCompile(`\[[A-Z][a-zA-Z]*(?:\s+et\s+al\.?)?,?\s*\d{4}[a-z]?\]`)
	// Inline citations: (Author et al., 2020)
	citationParenRe = regexp.MustCompile(`\([A-Z][a-zA-Z]*(?:\s+et\s+al\.?)?,?\s*\d{4}[a-z]?\)`)

	// Words split across lines: "computa-\ntion"
	hyphenBreakRe = regexp.MustCompile(`(\w+)-\n(\w+)`)

	multiSpaceRe   = regexp.MustCompile(`[ \t]+`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)

	// Page numbers on their own line
	pageNumberRe = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*$`)
	// Common header/footer lines
	headerFooterRe = regexp.MustCompile(`(?mi)^[ \t]*(Page\s+\d+|©\s*\d{4}|All rights reserved|Preprint|Draft)[ \t]*$`)
)

// typographicReplacer maps curly quotes, dashes, ligatures and other
// extraction artifacts to plain ASCII equivalents.
var typographicReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...", // ellipsis
	"\u00a0", " ", // non-breaking space
	"\ufeff", "", // BOM
	"\u200b", "", // zero-width space
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬀ", "ff",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
)

// Cleaner normalizes extracted PDF text.
type Cleaner struct {
	// RemoveCitations controls whether inline citation markers are
	// stripped during cleaning.
	RemoveCitations bool
}

// New returns a Cleaner. Section detection uses a citation-stripping
// cleaner; callers that need citations preserved pass false.
func New(removeCitations bool) *Cleaner {
	return &Cleaner{RemoveCitations: removeCitations}
}

// Clean applies the full set of cleaning operations to text.
func (c *Cleaner) Clean(text string) string {
	if text == "" {
		return ""
	}

	text = c.FixHyphenatedBreaks(text)
	if c.RemoveCitations {
		text = c.RemoveInlineCitations(text)
	}
	text = c.NormalizeWhitespace(text)
	text = c.RemovePageArtifacts(text)
	text = c.FixTypography(text)

	return strings.TrimSpace(text)
}

// CleanSection cleans the content span of a detected section. It is
// more aggressive than Clean: standalone numbers and very short
// non-alphabetic lines (stray figure labels and similar artifacts) are
// dropped. The error return satisfies the detection engine's cleaner
// contract; this implementation is pure and never fails.
func (c *Cleaner) CleanSection(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	text = c.Clean(text)

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if isDigits(line) {
			continue
		}
		if len(line) < 3 && !isAlpha(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.Join(cleaned, "\n"), nil
}

// FixHyphenatedBreaks rejoins words split across lines with a hyphen,
// e.g. "computa-\ntion" becomes "computation".
func (c *Cleaner) FixHyphenatedBreaks(text string) string {
	return hyphenBreakRe.ReplaceAllString(text, "$1$2")
}

// RemoveInlineCitations strips [1], [12, 15], [Author et al., 2020]
// and (Author et al., 2020) style citation markers.
func (c *Cleaner) RemoveInlineCitations(text string) string {
	text = citationNumericRe.ReplaceAllString(text, "")
	text = citationAuthorRe.ReplaceAllString(text, "")
	text = citationParenRe.ReplaceAllString(text, "")
	return text
}

// NormalizeWhitespace collapses space runs, caps consecutive blank
// lines at one, and trims each line.
func (c *Cleaner) NormalizeWhitespace(text string) string {
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// RemovePageArtifacts drops standalone page numbers and common
// header/footer lines.
func (c *Cleaner) RemovePageArtifacts(text string) string {
	text = pageNumberRe.ReplaceAllString(text, "")
	text = headerFooterRe.ReplaceAllString(text, "")
	return text
}

// FixTypography replaces curly quotes, dashes, ligatures, and stray
// control characters with plain equivalents.
func (c *Cleaner) FixTypography(text string) string {
	return typographicReplacer.Replace(text)
}

// sentence-splitting abbreviations whose trailing period is not a
// sentence boundary
var abbreviations = []string{
	"Dr.", "Mr.", "Mrs.", "Ms.", "Prof.", "et al.", "i.e.", "e.g.", "vs.", "Fig.", "Eq.",
}

const dotPlaceholder = "\x00DOT\x00"

// Sentences splits text into sentences on ./!/? boundaries, protecting
// common abbreviations.
func (c *Cleaner) Sentences(text string) []string {
	protected := text
	for _, abbr := range abbreviations {
		protected = strings.ReplaceAll(protected, abbr, strings.ReplaceAll(abbr, ".", dotPlaceholder))
	}

	var sentences []string
	var current strings.Builder
	runes := []rune(protected)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				sentences = append(sentences, current.String())
				current.Reset()
				// Skip the separating whitespace.
				for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
					i++
				}
			}
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}

	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(strings.ReplaceAll(s, dotPlaceholder, "."))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WordCount returns the number of whitespace-delimited tokens in text.
func (c *Cleaner) WordCount(text string) int {
	return len(strings.Fields(text))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
