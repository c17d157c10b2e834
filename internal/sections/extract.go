package sections

import (
	"strings"

	"github.com/paperiq/paperiq/models"
)

// extractContent carves the text into sections from a position-sorted
// match list. Each section's content runs from the character after the
// header line to the next match's position (or end of text), is passed
// through the cleaner, and is dropped when the cleaned content falls
// below the minimum length. A cleaner failure drops only the affected
// section.
func (d *Detector) extractContent(text string, matches []headerMatch) []models.Section {
	var sections []models.Section

	for i, match := range matches {
		headerEnd := strings.Index(text[match.position:], "\n")
		if headerEnd == -1 {
			headerEnd = len(match.headerText)
		}
		contentStart := match.position + headerEnd + 1

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].position
		}
		if contentStart > end {
			contentStart = end
		}

		content, err := d.cleaner.CleanSection(text[contentStart:end])
		if err != nil {
			d.log.Warn("section cleaning failed for %s at offset %d: %v", match.kind, match.position, err)
			continue
		}

		if len(content) < d.cfg.MinSectionLength {
			d.log.Debug("dropping %s section: cleaned content %d chars, minimum %d",
				match.kind, len(content), d.cfg.MinSectionLength)
			continue
		}

		sections = append(sections, models.NewSection(match.kind, content, match.confidence, contentStart, end))
	}

	return sections
}
