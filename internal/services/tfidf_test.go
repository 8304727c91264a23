package services

import (
	"math"
	"reflect"
	"testing"
)

func TestTextSimilarityIdenticalTexts(t *testing.T) {
	stopwords := buildStopwords()
	text := "distributed systems engineer building scalable services"

	got := TextSimilarity(text, text, stopwords)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("TextSimilarity(x, x) = %f, want 1.0", got)
	}
}

func TestTextSimilarityDisjointTexts(t *testing.T) {
	stopwords := buildStopwords()

	got := TextSimilarity("apple banana cherry", "xylophone trumpet violin", stopwords)
	if got != 0 {
		t.Errorf("TextSimilarity for disjoint texts = %f, want 0", got)
	}
}

func TestTextSimilarityEmptyInput(t *testing.T) {
	stopwords := buildStopwords()

	if got := TextSimilarity("", "some text here", stopwords); got != 0 {
		t.Errorf("TextSimilarity with empty side = %f, want 0", got)
	}
	if got := TextSimilarity("", "", stopwords); got != 0 {
		t.Errorf("TextSimilarity with both empty = %f, want 0", got)
	}
}

func TestTextSimilarityPartialOverlap(t *testing.T) {
	stopwords := buildStopwords()

	sim := TextSimilarity(
		"python developer with cloud experience",
		"python engineer with cloud background",
		stopwords,
	)
	if sim <= 0 || sim >= 1 {
		t.Errorf("partial overlap similarity = %f, want within (0, 1)", sim)
	}
}

func TestTextSimilarityDeterministic(t *testing.T) {
	stopwords := buildStopwords()
	a := "senior golang engineer kubernetes microservices"
	b := "backend engineer golang docker kubernetes"

	first := TextSimilarity(a, b, stopwords)
	for i := 0; i < 10; i++ {
		if got := TextSimilarity(a, b, stopwords); got != first {
			t.Fatalf("TextSimilarity not deterministic: run %d got %f, first %f", i, got, first)
		}
	}
}

func TestTfidfTermsFiltersShortAndStopwords(t *testing.T) {
	stopwords := buildStopwords()

	terms := tfidfTerms("the quick go fox", stopwords)
	for _, term := range terms {
		if term == "the" || term == "go" {
			t.Errorf("tfidfTerms kept filtered token %q", term)
		}
	}

	// Unigrams plus adjacent bigram of the surviving words.
	want := []string{"quick", "fox", "quick fox"}
	if !reflect.DeepEqual(terms, want) {
		t.Errorf("tfidfTerms = %v, want %v", terms, want)
	}
}

func TestTopKeywords(t *testing.T) {
	stopwords := buildStopwords()
	sentences := []string{
		"kubernetes deployment pipelines",
		"kubernetes cluster management",
		"terraform infrastructure automation",
	}

	keywords := TopKeywords(sentences, stopwords, 5)
	if len(keywords) != 5 {
		t.Fatalf("TopKeywords returned %d keywords, want 5", len(keywords))
	}

	found := false
	for _, kw := range keywords {
		if kw == "kubernetes" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("TopKeywords %v should contain the most frequent term %q", keywords, "kubernetes")
	}

	// Deterministic across runs despite map-based scoring.
	again := TopKeywords(sentences, stopwords, 5)
	if !reflect.DeepEqual(keywords, again) {
		t.Errorf("TopKeywords not deterministic: %v vs %v", keywords, again)
	}
}

func TestTopKeywordsEmptyInput(t *testing.T) {
	if got := TopKeywords(nil, buildStopwords(), 10); got != nil {
		t.Errorf("TopKeywords(nil) = %v, want nil", got)
	}
}
