package textclean

import (
	"strings"
	"testing"
)

func TestFixHyphenatedBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple break", "computa-\ntion is fast", "computation is fast"},
		{"multiple breaks", "exam-\nple and sam-\nple", "example and sample"},
		{"no break", "well-known method", "well-known method"},
		{"hyphen at end without following word", "dash-\n", "dash-\n"},
	}

	c := New(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.FixHyphenatedBreaks(tt.in); got != tt.want {
				t.Errorf("FixHyphenatedBreaks(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRemoveInlineCitations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"numeric", "as shown [1] before", "as shown  before"},
		{"numeric list", "results [1, 2, 3] agree", "results  agree"},
		{"author bracket", "per [Smith et al., 2020] the", "per  the"},
		{"author paren", "known (Smith et al., 2020) result", "known  result"},
		{"plain parenthetical kept", "value (about 5%) stays", "value (about 5%) stays"},
	}

	c := New(true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.RemoveInlineCitations(tt.in); got != tt.want {
				t.Errorf("RemoveInlineCitations(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	c := New(false)

	got := c.NormalizeWhitespace("a   b\t\tc\n\n\n\n\nd")
	want := "a b c\n\nd"
	if got != want {
		t.Errorf("NormalizeWhitespace() = %q, want %q", got, want)
	}
}

func TestRemovePageArtifacts(t *testing.T) {
	c := New(false)

	in := "real content\n42\nPage 7\n© 2023\nmore content"
	got := c.RemovePageArtifacts(in)
	if strings.Contains(got, "42") || strings.Contains(got, "Page 7") || strings.Contains(got, "© 2023") {
		t.Errorf("RemovePageArtifacts() left artifacts: %q", got)
	}
	if !strings.Contains(got, "real content") || !strings.Contains(got, "more content") {
		t.Errorf("RemovePageArtifacts() removed real content: %q", got)
	}
}

func TestFixTypography(t *testing.T) {
	c := New(false)

	got := c.FixTypography("“eﬃcient” — it’s…")
	want := `"efficient" - it's...`
	if got != want {
		t.Errorf("FixTypography() = %q, want %q", got, want)
	}
}

func TestCleanSection(t *testing.T) {
	c := New(true)

	in := "Real paragraph text here.\n17\nab\nMore real text follows."
	got, err := c.CleanSection(in)
	if err != nil {
		t.Fatalf("CleanSection() error = %v", err)
	}
	if strings.Contains(got, "17") {
		t.Errorf("CleanSection() kept standalone number: %q", got)
	}
	if !strings.Contains(got, "Real paragraph text here.") {
		t.Errorf("CleanSection() dropped real text: %q", got)
	}
	// Two-letter alphabetic lines survive; short non-alpha lines do not.
	if !strings.Contains(got, "ab") {
		t.Errorf("CleanSection() dropped short alphabetic line: %q", got)
	}
}

func TestCleanSection_Empty(t *testing.T) {
	c := New(true)
	got, err := c.CleanSection("")
	if err != nil {
		t.Fatalf("CleanSection(\"\") error = %v", err)
	}
	if got != "" {
		t.Errorf("CleanSection(\"\") = %q, want empty", got)
	}
}

func TestSentences(t *testing.T) {
	c := New(false)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "simple sentences",
			in:   "First sentence. Second sentence! Third?",
			want: []string{"First sentence.", "Second sentence!", "Third?"},
		},
		{
			name: "protected abbreviation",
			in:   "See Smith et al. for details. Next sentence.",
			want: []string{"See Smith et al. for details.", "Next sentence."},
		},
		{
			name: "figure abbreviation",
			in:   "Results in Fig. 3 confirm this. Done.",
			want: []string{"Results in Fig. 3 confirm this.", "Done."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Sentences(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Sentences() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Sentences()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	c := New(false)
	if got := c.WordCount("one two\tthree\nfour  five"); got != 5 {
		t.Errorf("WordCount() = %d, want 5", got)
	}
	if got := c.WordCount(""); got != 0 {
		t.Errorf("WordCount(\"\") = %d, want 0", got)
	}
}
