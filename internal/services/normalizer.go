package services

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	specialCharsRe = regexp.MustCompile(`[^\w\s@.-]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// NormalizeText strips characters outside word characters, whitespace,
// '@', '.' and '-', collapses whitespace runs (newlines included) into
// single spaces and trims the ends. Idempotent and locale-independent.
func NormalizeText(text string) string {
	text = specialCharsRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SplitSentences breaks text on sentence-ending punctuation, dropping
// empty fragments.
func SplitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var sentences []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// titleCase capitalizes the first letter of every word and lowercases the
// rest, treating any non-letter as a word break.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// contextWindow returns text around [start,end) clipped to the string,
// trimmed, for provenance alongside extracted entities.
func contextWindow(text string, start, end, radius int) string {
	from := start - radius
	if from < 0 {
		from = 0
	}
	to := end + radius
	if to > len(text) {
		to = len(text)
	}
	return strings.TrimSpace(text[from:to])
}
