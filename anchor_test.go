package symregex

import (
	"regexp"
	"testing"
)

// TestAnchorInFindAll tests that anchors keep their meaning for every match
// of FindAll, not only the first.
func TestAnchorInFindAll(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
	}{
		{"^test", "test hello test"},
		{"^[a-z]+", "hello world"},
		{"[a-z]+$", "hello world"},
		{"(?m)^[a-z]+", "ab\ncd\n\nef"},
		{"(?m)[a-z]+$", "ab\ncd\n"},
		{"(?m)^$\n", "a\n\n\nb"},
		{`\Aab|cd\z`, "ab ab cd cd"},
		{"(?m)^#.*", "# one\nx # no\n# two"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re := regexp.MustCompile(tt.pattern)
			expected := re.FindAllStringIndex(tt.input, -1)

			sre := MustCompile(tt.pattern)
			got := sre.FindAllIndex([]byte(tt.input), -1)

			if len(got) != len(expected) {
				t.Errorf("FindAllIndex(%q, %q): got %d matches, want %d matches\n  got: %v\n  want: %v",
					tt.pattern, tt.input, len(got), len(expected), got, expected)
				return
			}

			for i := range got {
				if got[i][0] != expected[i][0] || got[i][1] != expected[i][1] {
					t.Errorf("FindAllIndex(%q, %q)[%d]: got %v, want %v",
						tt.pattern, tt.input, i, got[i], expected[i])
				}
			}
		})
	}
}

// TestDollarEndZ tests that a non-multiline $ may match before a final line
// feed when DollarEndZ is set.
func TestDollarEndZ(t *testing.T) {
	tests := []struct {
		input      string
		dollarEndZ bool
		want       []int
	}{
		{"ab", false, []int{0, 2}},
		{"ab", true, []int{0, 2}},
		{"ab\n", false, nil},
		{"ab\n", true, []int{0, 2}},
		{"ab\n\n", true, nil},
		{"ab\nab", true, []int{3, 5}},
	}

	for _, tt := range tests {
		config := DefaultConfig()
		config.DollarEndZ = tt.dollarEndZ
		re, err := CompileWithConfig(`ab$`, config)
		if err != nil {
			t.Fatal(err)
		}
		got := re.FindStringIndex(tt.input)
		if (got == nil) != (tt.want == nil) || got != nil && (got[0] != tt.want[0] || got[1] != tt.want[1]) {
			t.Errorf("DollarEndZ=%v FindStringIndex(%q) = %v, want %v", tt.dollarEndZ, tt.input, got, tt.want)
		}
	}
}

// TestAnchorsInRange tests that the start of text is offset 0 and the end
// of text is the end of the range, while the character before the range
// still decides word boundaries.
func TestAnchorsInRange(t *testing.T) {
	tests := []struct {
		pattern    string
		input      string
		start, end int
		want       bool
	}{
		{`^ab`, "xxab", 2, -1, false},
		{`^ab`, "abxx", 0, 2, true},
		{`\bab`, "xxab", 2, -1, false},
		{`\bab`, "x ab", 2, -1, true},
		{`ab\b`, "abab", 0, 2, true},
		{`\Bab`, "abab", 2, -1, true},
		{`ab\b`, "ab b", 0, 2, true},
		{`ab$`, "abab", 0, 2, true},
		{`ab\z`, "abxx", 0, 2, true},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		got, err := re.IsMatch([]byte(tt.input), tt.start, tt.end)
		if err != nil {
			t.Fatalf("IsMatch(%q, %d, %d) error: %v", tt.input, tt.start, tt.end, err)
		}
		if got != tt.want {
			t.Errorf("%q IsMatch(%q, %d, %d) = %v, want %v", tt.pattern, tt.input, tt.start, tt.end, got, tt.want)
		}
	}
}
