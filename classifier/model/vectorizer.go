// SPDX-License-Identifier: GPL-3.0-or-later
package model

import (
	"math"
	"regexp"
	"strings"
)

// scikit-learn's default token pattern: unicode words of two or more characters
var tokenRegexp = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// FeatureVector is sparse, keyed by vocabulary column.
type FeatureVector map[int]float64

// Vectorizer is a fitted TF-IDF transform.
type Vectorizer struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	Idf         []float64      `json:"idf"`
	StopWords   []string       `json:"stop_words,omitempty"`
	SublinearTf bool           `json:"sublinear_tf,omitempty"`
	// "l2" or "" for no normalization
	Norm string `json:"norm"`

	stopWords map[string]bool
}

func (v *Vectorizer) prepare() {
	v.stopWords = make(map[string]bool, len(v.StopWords))
	for _, w := range v.StopWords {
		v.stopWords[strings.ToLower(w)] = true
	}
}

func (v *Vectorizer) Tokenize(text string) []string {
	tokens := tokenRegexp.FindAllString(strings.ToLower(text), -1)
	if len(v.stopWords) == 0 {
		return tokens
	}

	filtered := tokens[:0]
	for _, t := range tokens {
		if !v.stopWords[t] {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func (v *Vectorizer) Vectorize(text string) FeatureVector {
	counts := FeatureVector{}
	for _, token := range v.Tokenize(text) {
		if idx, ok := v.Vocabulary[token]; ok {
			counts[idx]++
		}
	}

	norm := 0.0
	for idx, tf := range counts {
		if v.SublinearTf {
			tf = 1 + math.Log(tf)
		}
		weight := tf * v.Idf[idx]
		counts[idx] = weight
		norm += weight * weight
	}

	if v.Norm == "l2" && norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}

	return counts
}
