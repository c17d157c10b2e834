package sections

import (
	"strings"

	"github.com/paperiq/paperiq/models"
)

// maxHeaderLength is the longest trimmed block text still considered a
// potential header.
const maxHeaderLength = 100

// sectionKeyword maps a lowercase keyword to a section kind via
// substring containment. More lenient than the anchored header
// patterns; order matters, first containing keyword wins.
type sectionKeyword struct {
	keyword string
	kind    models.SectionKind
}

var sectionKeywords = []sectionKeyword{
	{"abstract", models.KindAbstract},
	{"introduction", models.KindIntroduction},
	{"methodology", models.KindMethodology},
	{"methods", models.KindMethodology},
	{"materials and methods", models.KindMethodology},
	{"experimental setup", models.KindMethodology},
	{"results", models.KindResults},
	{"experiments", models.KindResults},
	{"experimental results", models.KindResults},
	{"discussion", models.KindDiscussion},
	{"analysis", models.KindDiscussion},
	{"conclusion", models.KindConclusion},
	{"conclusions", models.KindConclusion},
	{"concluding remarks", models.KindConclusion},
	{"references", models.KindReferences},
	{"bibliography", models.KindReferences},
}

// classifyHeaderText maps a block's text to a section kind, or
// KindUnknown when no keyword is contained in it.
func classifyHeaderText(text string) models.SectionKind {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, sk := range sectionKeywords {
		if strings.Contains(lower, sk.keyword) {
			return sk.kind
		}
	}
	return models.KindUnknown
}

// layoutAnalysis finds header candidates among positioned text blocks:
// short blocks set in a font noticeably larger than the document mean,
// or set in bold. Returns nothing when no blocks carry usable font
// size data.
func (d *Detector) layoutAnalysis(text string, blocks []models.TextBlock) []headerMatch {
	if len(blocks) == 0 {
		return nil
	}

	var sum float64
	var count int
	for _, b := range blocks {
		if b.FontSize > 0 {
			sum += b.FontSize
			count++
		}
	}
	if count == 0 {
		return nil
	}
	headerThreshold := (sum / float64(count)) * d.cfg.HeaderFontRatio

	lowerText := strings.ToLower(text)

	var matches []headerMatch
	for _, block := range blocks {
		blockText := strings.TrimSpace(block.Text)
		if len(blockText) > maxHeaderLength {
			continue
		}

		largeFont := block.FontSize >= headerThreshold
		if !largeFont && !block.Bold {
			continue
		}

		kind := classifyHeaderText(blockText)
		if kind == models.KindUnknown {
			continue
		}

		position := strings.Index(lowerText, strings.ToLower(blockText))
		if position == -1 {
			continue
		}

		confidence := d.cfg.LayoutBaseConfidence
		if largeFont {
			confidence += d.cfg.LayoutFontBonus
		}
		if block.Bold {
			confidence += d.cfg.LayoutBoldBonus
		}

		matches = append(matches, headerMatch{
			kind:       kind,
			headerText: blockText,
			position:   position,
			confidence: confidence,
			method:     methodLayout,
			fontSize:   block.FontSize,
			bold:       block.Bold,
		})
	}

	return matches
}
