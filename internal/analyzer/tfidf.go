package analyzer

import (
	"math"
	"sort"
)

// vector is a sparse document vector over the fitted vocabulary.
type vector map[int]float64

// vectorizer builds L2-normalized TF-IDF vectors over unigrams and bigrams.
type vectorizer struct {
	maxFeatures int
	minDF       int
}

func newVectorizer(maxFeatures, minDF int) *vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = 100
	}
	if minDF <= 0 {
		minDF = 1
	}
	return &vectorizer{maxFeatures: maxFeatures, minDF: minDF}
}

// fitTransform learns a vocabulary from the tokenized docs and returns one
// unit-length vector per doc. Terms must appear in at least minDF docs; the
// maxFeatures most frequent survivors form the vocabulary, ties breaking
// alphabetically so runs are reproducible.
func (v *vectorizer) fitTransform(docs [][]string) []vector {
	n := len(docs)
	counts := make([]map[string]int, n)
	df := make(map[string]int)
	total := make(map[string]int)

	for i, tokens := range docs {
		c := make(map[string]int)
		for _, t := range tokens {
			c[t]++
		}
		for j := 0; j+1 < len(tokens); j++ {
			c[tokens[j]+" "+tokens[j+1]]++
		}
		counts[i] = c
		for term, k := range c {
			df[term]++
			total[term] += k
		}
	}

	candidates := make([]string, 0, len(df))
	for term, d := range df {
		if d >= v.minDF {
			candidates = append(candidates, term)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if total[candidates[i]] != total[candidates[j]] {
			return total[candidates[i]] > total[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > v.maxFeatures {
		candidates = candidates[:v.maxFeatures]
	}

	vocab := make(map[string]int, len(candidates))
	for i, term := range candidates {
		vocab[term] = i
	}

	// Smoothed inverse document frequency.
	idf := make([]float64, len(candidates))
	for term, idx := range vocab {
		idf[idx] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	out := make([]vector, n)
	for i, c := range counts {
		vec := make(vector)
		for term, k := range c {
			if idx, ok := vocab[term]; ok {
				vec[idx] = float64(k) * idf[idx]
			}
		}
		normalize(vec)
		out[i] = vec
	}
	return out
}

// normalize scales vec to unit length in place.
func normalize(vec vector) {
	var sum float64
	for _, val := range vec {
		sum += val * val
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for idx := range vec {
		vec[idx] /= norm
	}
}
