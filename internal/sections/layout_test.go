package sections

import (
	"strings"
	"testing"

	"github.com/paperiq/paperiq/models"
)

func TestLayoutAnalysis_NoBlocks(t *testing.T) {
	d := newTestDetector()

	if got := d.layoutAnalysis("Abstract\nsome text", nil); got != nil {
		t.Errorf("layoutAnalysis() with no blocks = %v, want nil", got)
	}
}

func TestLayoutAnalysis_NoFontSizes(t *testing.T) {
	d := newTestDetector()

	blocks := []models.TextBlock{
		{Text: "Abstract", Bold: true},
		{Text: "body text"},
	}
	if got := d.layoutAnalysis("Abstract\nbody text", blocks); got != nil {
		t.Errorf("layoutAnalysis() without font sizes = %v, want nil", got)
	}
}

func TestLayoutAnalysis_Confidence(t *testing.T) {
	d := newTestDetector()

	// Mean font size 12, header threshold 14.4.
	body := []models.TextBlock{
		{Text: "body", FontSize: 10},
		{Text: "body", FontSize: 10},
		{Text: "body", FontSize: 10},
	}

	tests := []struct {
		name  string
		block models.TextBlock
		want  float64
	}{
		{
			name:  "large bold",
			block: models.TextBlock{Text: "Results", FontSize: 18, Bold: true},
			want:  0.85,
		},
		{
			name:  "large only",
			block: models.TextBlock{Text: "Results", FontSize: 18},
			want:  0.70,
		},
		{
			name:  "bold only",
			block: models.TextBlock{Text: "Results", FontSize: 10, Bold: true},
			want:  0.65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := append([]models.TextBlock{tt.block}, body...)
			matches := d.layoutAnalysis("Results\nbody body body", blocks)
			if len(matches) != 1 {
				t.Fatalf("layoutAnalysis() returned %d matches, want 1", len(matches))
			}
			got := matches[0]
			if diff := got.confidence - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("confidence = %v, want %v", got.confidence, tt.want)
			}
			if got.kind != models.KindResults {
				t.Errorf("kind = %v, want results", got.kind)
			}
			if got.method != methodLayout {
				t.Errorf("method = %v, want layout", got.method)
			}
		})
	}
}

func TestLayoutAnalysis_SkipsUnlikelyBlocks(t *testing.T) {
	d := newTestDetector()

	long := strings.Repeat("x", 90) + " introduction " + strings.Repeat("y", 20)
	text := "Introduction\n" + long + "\nplain body"
	blocks := []models.TextBlock{
		// Over 100 chars: never a header even in large bold type.
		{Text: long, FontSize: 20, Bold: true},
		// Neither large nor bold.
		{Text: "Introduction", FontSize: 10},
		// Large but no recognized keyword.
		{Text: "Acknowledgements", FontSize: 20},
		// Large with keyword but absent from the text.
		{Text: "Discussion", FontSize: 20},
		{Text: "plain body", FontSize: 10},
	}

	if matches := d.layoutAnalysis(text, blocks); len(matches) != 0 {
		t.Errorf("layoutAnalysis() returned %d matches, want 0", len(matches))
	}
}

func TestClassifyHeaderText(t *testing.T) {
	tests := []struct {
		text string
		want models.SectionKind
	}{
		{"Abstract", models.KindAbstract},
		{"1. Introduction", models.KindIntroduction},
		{"Materials and Methods", models.KindMethodology},
		{"Experimental Setup", models.KindMethodology},
		{"3 Results and Discussion", models.KindResults},
		{"Concluding Remarks", models.KindConclusion},
		{"BIBLIOGRAPHY", models.KindReferences},
		{"Acknowledgements", models.KindUnknown},
		{"", models.KindUnknown},
	}

	for _, tt := range tests {
		if got := classifyHeaderText(tt.text); got != tt.want {
			t.Errorf("classifyHeaderText(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
