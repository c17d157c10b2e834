package sections

import (
	"regexp"
	"strings"

	"github.com/paperiq/paperiq/models"
)

// kindPatterns associates a section kind with the header patterns that
// identify it. Table order matters: the first kind whose pattern
// matches a line claims it.
type kindPatterns struct {
	kind     models.SectionKind
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return compiled
}

// headerPatterns recognizes canonical section headers, allowing
// optional arabic ("1.", "2") or roman ("II.", "IV") numbering
// prefixes. Compiled once at package load and never mutated.
var headerPatterns = []kindPatterns{
	{models.KindAbstract, compileAll(
		`^abstract\s*$`,
		`^summary\s*$`,
		`^synopsis\s*$`,
	)},
	{models.KindIntroduction, compileAll(
		`^(?:\d+\.?\s*)?introduction\s*$`,
		`^(?:i\.?\s*)?introduction\s*$`,
		`^background\s*$`,
	)},
	{models.KindMethodology, compileAll(
		`^(?:\d+\.?\s*)?(?:materials?\s+and\s+)?methods?\s*$`,
		`^(?:\d+\.?\s*)?methodology\s*$`,
		`^(?:\d+\.?\s*)?experimental\s+(?:setup|design|methods?)\s*$`,
		`^(?:\d+\.?\s*)?approach\s*$`,
		`^(?:\d+\.?\s*)?proposed\s+(?:method|approach|system)\s*$`,
		`^(?:(?:ii|iii)\.?\s*)?methods?\s*$`,
	)},
	{models.KindResults, compileAll(
		`^(?:\d+\.?\s*)?results?\s*$`,
		`^(?:\d+\.?\s*)?experiments?\s*$`,
		`^(?:\d+\.?\s*)?experimental\s+results?\s*$`,
		`^(?:\d+\.?\s*)?findings\s*$`,
		`^(?:\d+\.?\s*)?evaluation\s*$`,
		`^(?:(?:iii|iv)\.?\s*)?results?\s*$`,
	)},
	{models.KindDiscussion, compileAll(
		`^(?:\d+\.?\s*)?discussion\s*$`,
		`^(?:\d+\.?\s*)?analysis\s*$`,
		`^(?:\d+\.?\s*)?discussion\s+and\s+(?:analysis|implications)\s*$`,
		`^(?:(?:iv|v)\.?\s*)?discussion\s*$`,
	)},
	{models.KindConclusion, compileAll(
		`^(?:\d+\.?\s*)?conclusions?\s*$`,
		`^(?:\d+\.?\s*)?concluding\s+remarks?\s*$`,
		`^(?:\d+\.?\s*)?summary\s+and\s+conclusions?\s*$`,
		`^(?:\d+\.?\s*)?future\s+work\s*$`,
		`^(?:(?:v|vi)\.?\s*)?conclusions?\s*$`,
	)},
	{models.KindReferences, compileAll(
		`^references\s*$`,
		`^bibliography\s*$`,
		`^works?\s+cited\s*$`,
		`^literature\s+cited\s*$`,
	)},
}

// patternMatch scans the text line by line for header patterns. The
// reported position is the byte offset of the start of the matching
// line within the full text.
func (d *Detector) patternMatch(text string) []headerMatch {
	var matches []headerMatch

	position := 0
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			position += len(line) + 1
			continue
		}

		for _, kp := range headerPatterns {
			matched := false
			for _, pattern := range kp.patterns {
				if pattern.MatchString(stripped) {
					matches = append(matches, headerMatch{
						kind:       kp.kind,
						headerText: stripped,
						position:   position,
						confidence: d.cfg.PatternConfidence,
						method:     methodPattern,
					})
					matched = true
					break
				}
			}
			// A line claims at most one kind.
			if matched {
				break
			}
		}

		position += len(line) + 1
	}

	return matches
}
