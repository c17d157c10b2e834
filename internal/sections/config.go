package sections

// Config holds the detection engine tunables. The confidence constants
// are hand-tuned; changing them changes detection behavior and the
// quality scores reported for every paper.
type Config struct {
	// MinSectionLength is the minimum cleaned content length, in
	// characters, for a section to be kept.
	MinSectionLength int

	// HeaderFontRatio is the multiple of the document's mean font size
	// at or above which a text block counts as header-sized.
	HeaderFontRatio float64

	// PatternConfidence is the base confidence of a regex header match.
	PatternConfidence float64

	// LayoutBaseConfidence, LayoutFontBonus, and LayoutBoldBonus build
	// up the confidence of a layout header match.
	LayoutBaseConfidence float64
	LayoutFontBonus      float64
	LayoutBoldBonus      float64

	// PairingWindow is the maximum character distance between a pattern
	// match and a layout match of the same kind for them to corroborate
	// each other.
	PairingWindow int

	// CombinedConfidenceCap bounds the confidence of a corroborated
	// match; no section is ever treated as absolutely certain.
	CombinedConfidenceCap float64

	// Quality score thresholds for the high and medium levels.
	HighQualityThreshold   float64
	MediumQualityThreshold float64
}

// DefaultConfig returns the standard detection configuration.
func DefaultConfig() Config {
	return Config{
		MinSectionLength:       50,
		HeaderFontRatio:        1.2,
		PatternConfidence:      0.70,
		LayoutBaseConfidence:   0.50,
		LayoutFontBonus:        0.20,
		LayoutBoldBonus:        0.15,
		PairingWindow:          500,
		CombinedConfidenceCap:  0.95,
		HighQualityThreshold:   0.75,
		MediumQualityThreshold: 0.5,
	}
}
