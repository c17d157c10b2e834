package sections

import (
	"github.com/paperiq/paperiq/models"
)

// Weights of the completeness and confidence terms in the quality
// score.
const (
	completenessWeight = 0.6
	confidenceWeight   = 0.4
)

// DetectionQuality scores how well a paper's structure was recovered:
// the fraction of expected section kinds found, weighted with the mean
// detection confidence. An empty section list yields (0, none).
func (d *Detector) DetectionQuality(sections []models.Section) models.DetectionQuality {
	if len(sections) == 0 {
		return models.DetectionQuality{Score: 0.0, Level: models.QualityNone}
	}

	found := make(map[models.SectionKind]bool, len(sections))
	var confidenceSum float64
	for _, s := range sections {
		found[s.Kind] = true
		confidenceSum += s.Confidence
	}

	completeness := float64(len(found)) / float64(len(models.AllExpectedKinds()))
	avgConfidence := confidenceSum / float64(len(sections))

	score := completeness*completenessWeight + avgConfidence*confidenceWeight

	level := models.QualityLow
	switch {
	case score >= d.cfg.HighQualityThreshold:
		level = models.QualityHigh
	case score >= d.cfg.MediumQualityThreshold:
		level = models.QualityMedium
	}

	return models.DetectionQuality{Score: score, Level: level}
}
