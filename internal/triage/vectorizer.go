package triage

import (
	"strings"
	"unicode"
)

// Vectorizer converts free text into a fixed-dimension TF-IDF vector. The
// vocabulary is fixed at training time; terms outside it contribute nothing.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// Dimension returns the feature vector length.
func (v *Vectorizer) Dimension() int {
	return len(v.IDF)
}

// Vectorize produces the TF-IDF feature vector for the text. Deterministic
// for a given vocabulary; never errors.
func (v *Vectorizer) Vectorize(text string) []float64 {
	vec := make([]float64, v.Dimension())
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	counts := make(map[int]int, len(tokens))
	for _, token := range tokens {
		if idx, ok := v.Vocabulary[token]; ok {
			counts[idx]++
		}
	}
	for idx, count := range counts {
		vec[idx] = float64(count) / float64(len(tokens)) * v.IDF[idx]
	}
	return vec
}

// Tokenize lowercases the text and splits it on any non-alphanumeric rune.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
