package services

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips special characters",
			input: "Hello, world! (testing) #go",
			want:  "Hello world testing go",
		},
		{
			name:  "keeps emails and hyphens",
			input: "contact: john.doe@example.com, full-stack",
			want:  "contact john.doe@example.com full-stack",
		},
		{
			name:  "collapses whitespace and newlines",
			input: "line one\n\n\tline   two",
			want:  "line one line two",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "only special characters",
			input: "!!!***",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, world! How are you?",
		"  spaced   out\ttext\n",
		"résumé with unicode — dashes",
		"john.doe@example.com +1-555-0199",
	}

	for _, input := range inputs {
		once := NormalizeText(input)
		twice := NormalizeText(once)
		if once != twice {
			t.Errorf("NormalizeText not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First sentence. Second one! Third? ")
	want := []string{"First sentence", "Second one", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences = %v, want %v", got, want)
	}

	if got := SplitSentences(""); got != nil {
		t.Errorf("SplitSentences(\"\") = %v, want nil", got)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"python", "Python"},
		{"machine learning", "Machine Learning"},
		{"c++", "C++"},
		{"node.js", "Node.Js"},
		{"AWS", "Aws"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := titleCase(tt.input); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestContextWindow(t *testing.T) {
	text := "abcdefghij"

	if got := contextWindow(text, 4, 6, 2); got != "cdefgh" {
		t.Errorf("contextWindow = %q, want %q", got, "cdefgh")
	}

	// Clipped at both ends
	if got := contextWindow(text, 0, 2, 5); got != "abcdefg" {
		t.Errorf("contextWindow clipped start = %q, want %q", got, "abcdefg")
	}
	if got := contextWindow(text, 8, 10, 5); got != "defghij" {
		t.Errorf("contextWindow clipped end = %q, want %q", got, "defghij")
	}
}
