package triage

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Sample is one labeled training row.
type Sample struct {
	Description string
	Department  string
}

const smoothing = 1.0

// Train fits a multinomial naive Bayes model over TF-IDF features from the
// labeled corpus. The result is one linear decision function per department:
// log prior plus per-term log-likelihood weights.
func Train(samples []Sample) (*Model, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples")
	}

	// Vocabulary and document frequencies over the whole corpus.
	df := make(map[string]int)
	tokenized := make([][]string, len(samples))
	for i, sample := range samples {
		tokens := Tokenize(sample.Description)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			if _, ok := seen[token]; !ok {
				seen[token] = struct{}{}
				df[token]++
			}
		}
	}
	if len(df) == 0 {
		return nil, fmt.Errorf("training corpus produced an empty vocabulary")
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vectorizer := Vectorizer{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
	}
	for idx, term := range terms {
		vectorizer.Vocabulary[term] = idx
		vectorizer.IDF[idx] = math.Log(float64(1+len(samples))/float64(1+df[term])) + 1
	}

	labels := make([]string, 0)
	labelIndex := make(map[string]int)
	for _, sample := range samples {
		if _, ok := labelIndex[sample.Department]; !ok {
			labelIndex[sample.Department] = len(labels)
			labels = append(labels, sample.Department)
		}
	}
	sort.Strings(labels)
	for idx, label := range labels {
		labelIndex[label] = idx
	}

	dim := vectorizer.Dimension()
	classMass := make([][]float64, len(labels))
	classTotal := make([]float64, len(labels))
	classCount := make([]int, len(labels))
	for i := range classMass {
		classMass[i] = make([]float64, dim)
	}

	for i, sample := range samples {
		class := labelIndex[sample.Department]
		classCount[class]++
		counts := make(map[int]int)
		for _, token := range tokenized[i] {
			if idx, ok := vectorizer.Vocabulary[token]; ok {
				counts[idx]++
			}
		}
		for idx, count := range counts {
			mass := float64(count) / float64(len(tokenized[i])) * vectorizer.IDF[idx]
			classMass[class][idx] += mass
			classTotal[class] += mass
		}
	}

	model := &Model{
		Vectorizer: vectorizer,
		Labels:     labels,
		Bias:       make([]float64, len(labels)),
		Weights:    make([][]float64, len(labels)),
		TrainedAt:  time.Now().UTC(),
		Samples:    len(samples),
	}
	for class := range labels {
		model.Bias[class] = math.Log(float64(classCount[class]) / float64(len(samples)))
		model.Weights[class] = make([]float64, dim)
		denom := classTotal[class] + smoothing*float64(dim)
		for idx := 0; idx < dim; idx++ {
			model.Weights[class][idx] = math.Log((classMass[class][idx] + smoothing) / denom)
		}
	}
	return model, nil
}
