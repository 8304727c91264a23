package services

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenRe = regexp.MustCompile(`\w+`)

// termVector is an L2-normalized TF-IDF vector keyed by term.
type termVector map[string]float64

// tfidfTerms tokenizes text into lowercased unigram and bigram terms,
// dropping stopwords and tokens shorter than three characters.
func tfidfTerms(text string, stopwords map[string]bool) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)

	var words []string
	for _, w := range raw {
		if len(w) <= 2 || stopwords[w] {
			continue
		}
		words = append(words, w)
	}

	terms := make([]string, 0, len(words)*2)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// fitTFIDF builds L2-normalized TF-IDF vectors for the given documents.
// The vocabulary is fit on exactly these documents; a fresh fit per
// comparison pair keeps the routine stateless and parallel-safe.
func fitTFIDF(docs []string, stopwords map[string]bool) []termVector {
	n := len(docs)
	counts := make([]map[string]float64, n)
	docFreq := make(map[string]int)

	for i, doc := range docs {
		tf := make(map[string]float64)
		for _, term := range tfidfTerms(doc, stopwords) {
			tf[term]++
		}
		counts[i] = tf
		for term := range tf {
			docFreq[term]++
		}
	}

	// Smoothed IDF, matching the usual ln((1+n)/(1+df))+1 formulation.
	idf := make(map[string]float64, len(docFreq))
	for term, df := range docFreq {
		idf[term] = math.Log(float64(1+n)/float64(1+df)) + 1
	}

	vectors := make([]termVector, n)
	for i, tf := range counts {
		vec := make(termVector, len(tf))
		var norm float64
		for term, count := range tf {
			w := count * idf[term]
			vec[term] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range vec {
				vec[term] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors
}

func cosine(a, b termVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	return dot
}

// TextSimilarity is the cosine similarity of two texts in a TF-IDF space
// fit jointly on the pair. Returns 0 when either side has no usable terms.
func TextSimilarity(a, b string, stopwords map[string]bool) float64 {
	vectors := fitTFIDF([]string{a, b}, stopwords)
	return cosine(vectors[0], vectors[1])
}

// TopKeywords ranks terms by mean TF-IDF score across the given sentence
// documents and returns the top n. Ties break alphabetically so the
// ranking is deterministic.
func TopKeywords(sentences []string, stopwords map[string]bool, n int) []string {
	if len(sentences) == 0 || n <= 0 {
		return nil
	}

	vectors := fitTFIDF(sentences, stopwords)

	means := make(map[string]float64)
	for _, vec := range vectors {
		for term, w := range vec {
			means[term] += w
		}
	}
	total := float64(len(vectors))

	type scored struct {
		term  string
		score float64
	}
	ranked := make([]scored, 0, len(means))
	for term, sum := range means {
		ranked = append(ranked, scored{term: term, score: sum / total})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].term < ranked[j].term
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	keywords := make([]string, len(ranked))
	for i, s := range ranked {
		keywords[i] = s.term
	}
	return keywords
}
