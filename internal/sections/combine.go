package sections

import (
	"github.com/paperiq/paperiq/models"
)

// combineMatches merges pattern and layout matches. A pattern match
// paired with the closest unconsumed layout match of the same kind
// within the pairing window becomes a single combined match whose
// confidence reflects the independent corroboration; everything else
// passes through unchanged.
func (d *Detector) combineMatches(patternMatches, layoutMatches []headerMatch) []headerMatch {
	combined := make([]headerMatch, 0, len(patternMatches)+len(layoutMatches))
	consumed := make(map[int]bool, len(layoutMatches))

	for _, pm := range patternMatches {
		bestIdx := -1
		bestDistance := d.cfg.PairingWindow

		for i, lm := range layoutMatches {
			if consumed[i] || lm.kind != pm.kind {
				continue
			}
			distance := pm.position - lm.position
			if distance < 0 {
				distance = -distance
			}
			// Strict < keeps the first-encountered layout match when
			// two candidates are equidistant.
			if distance < bestDistance {
				bestDistance = distance
				bestIdx = i
			}
		}

		if bestIdx >= 0 {
			lm := layoutMatches[bestIdx]
			consumed[bestIdx] = true

			confidence := pm.confidence + lm.confidence - 0.20
			if confidence > d.cfg.CombinedConfidenceCap {
				confidence = d.cfg.CombinedConfidenceCap
			}

			combined = append(combined, headerMatch{
				kind:       pm.kind,
				headerText: pm.headerText,
				position:   pm.position,
				confidence: confidence,
				method:     methodCombined,
				fontSize:   lm.fontSize,
				bold:       lm.bold,
			})
		} else {
			combined = append(combined, pm)
		}
	}

	for i, lm := range layoutMatches {
		if !consumed[i] {
			combined = append(combined, lm)
		}
	}

	return combined
}

// dedupeMatches keeps the single highest-confidence match per section
// kind. Ties keep the first match in input order, and the output
// preserves the order in which kinds were first encountered.
func dedupeMatches(matches []headerMatch) []headerMatch {
	chosen := make(map[models.SectionKind]headerMatch, len(matches))
	var order []models.SectionKind

	for _, m := range matches {
		existing, seen := chosen[m.kind]
		if !seen {
			order = append(order, m.kind)
			chosen[m.kind] = m
			continue
		}
		if m.confidence > existing.confidence {
			chosen[m.kind] = m
		}
	}

	result := make([]headerMatch, 0, len(order))
	for _, kind := range order {
		result = append(result, chosen[kind])
	}
	return result
}
