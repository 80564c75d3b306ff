// Package nlp holds the intent classifier: tokenization, the bag-of-words
// vectorizer, a small feed-forward model with its training loop, and the
// signature-keyed model cache.
package nlp

import (
	"math"
	"sort"
	"strings"
)

// Sample is a single labeled training example.
type Sample struct {
	Text   string `yaml:"text" json:"text"`
	Intent string `yaml:"intent" json:"intent"`
}

// Tokenize lower-cases the input, maps every rune outside [a-z0-9] and
// whitespace to a space, and splits on whitespace. Empty tokens are dropped.
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// BuildVocab returns the lexicographically sorted set of distinct tokens
// across all sample texts. Token index in the result is the feature index.
func BuildVocab(samples []Sample) []string {
	set := make(map[string]struct{})
	for _, s := range samples {
		for _, t := range Tokenize(s.Text) {
			set[t] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(set))
	for t := range set {
		vocab = append(vocab, t)
	}
	sort.Strings(vocab)
	return vocab
}

// BuildLabels returns the sorted set of distinct intents in the corpus.
func BuildLabels(samples []Sample) []string {
	set := make(map[string]struct{})
	for _, s := range samples {
		set[s.Intent] = struct{}{}
	}
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Vectorize turns text into an L2-normalized term-frequency vector over the
// vocabulary. Tokens not in the vocabulary are ignored; a text with no known
// tokens yields the zero vector (the norm floor is 1).
func Vectorize(text string, vocab []string) []float64 {
	index := make(map[string]int, len(vocab))
	for i, t := range vocab {
		index[t] = i
	}
	vec := make([]float64, len(vocab))
	for _, t := range Tokenize(text) {
		if i, ok := index[t]; ok {
			vec[i]++
		}
	}
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		norm = 1
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
