package services

import (
	"strings"
	"unicode"
)

// textQualityScore maps the Flesch reading ease of the text to [0,1].
// Empty or degenerate input gets a neutral 0.5.
func textQualityScore(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0.5
	}

	sentences := len(SplitSentences(text))
	if sentences == 0 {
		sentences = 1
	}

	var syllables int
	for _, w := range words {
		syllables += countSyllables(w)
	}

	flesch := 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))

	quality := flesch / 100
	if quality < 0 {
		quality = 0
	}
	if quality > 1 {
		quality = 1
	}
	return quality
}

// countSyllables approximates syllables as vowel groups, minimum one.
func countSyllables(word string) int {
	count := 0
	prevVowel := false
	for _, r := range strings.ToLower(word) {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel && unicode.IsLetter(r)
	}
	if count == 0 {
		count = 1
	}
	return count
}
