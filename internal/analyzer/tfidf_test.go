package analyzer

import (
	"math"
	"testing"
)

func TestVectorizer_MinDFDropsRareTerms(t *testing.T) {
	docs := [][]string{
		{"apple", "pie"},
		{"apple", "cake"},
		{"zebra"},
	}

	vecs := newVectorizer(100, 2).fitTransform(docs)

	if len(vecs) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vecs))
	}
	// Only "apple" appears in two documents; everything else is dropped.
	if len(vecs[0]) != 1 || len(vecs[1]) != 1 {
		t.Errorf("expected single-term vectors, got %v and %v", vecs[0], vecs[1])
	}
	if len(vecs[2]) != 0 {
		t.Errorf("expected empty vector for the isolated doc, got %v", vecs[2])
	}
	for idx, val := range vecs[0] {
		if math.Abs(val-1) > 1e-9 {
			t.Errorf("normalized single-term weight = %f, want 1", val)
		}
		if vecs[1][idx] != val {
			t.Error("identical docs should agree on the shared term")
		}
	}
}

func TestVectorizer_MaxFeaturesKeepsMostFrequent(t *testing.T) {
	docs := [][]string{
		{"common", "common", "rare"},
		{"common", "mid"},
		{"common", "mid", "rare"},
	}

	// minDF 1 admits everything; the cap keeps the top terms only.
	v := newVectorizer(2, 1)
	vecs := v.fitTransform(docs)

	seen := make(map[int]bool)
	for _, vec := range vecs {
		for idx := range vec {
			seen[idx] = true
		}
	}
	if len(seen) > 2 {
		t.Errorf("vocabulary exceeded the cap: %d distinct indexes", len(seen))
	}
}

func TestVectorizer_UnitLength(t *testing.T) {
	docs := [][]string{
		{"go", "tour", "channel"},
		{"go", "tour", "select"},
	}

	vecs := newVectorizer(100, 2).fitTransform(docs)

	for i, vec := range vecs {
		var sum float64
		for _, val := range vec {
			sum += val * val
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("vector %d has squared norm %f, want 1", i, sum)
		}
	}
}

func TestDBSCAN_ClustersAndNoise(t *testing.T) {
	points := []vector{
		{0: 1},
		{0: 1},
		{1: 1},
	}

	labels := dbscan(points, 0.6, 2)

	if labels[0] != 0 || labels[1] != 0 {
		t.Errorf("expected the identical pair in cluster 0, got %v", labels)
	}
	if labels[2] != labelNoise {
		t.Errorf("expected the isolated point to be noise, got %d", labels[2])
	}
}

func TestDBSCAN_ChainsThroughSharedNeighbors(t *testing.T) {
	points := []vector{
		{0: 1},
		{0: 0.8, 1: 0.6},
		{1: 1},
		{2: 1},
	}

	labels := dbscan(points, 0.6, 2)

	if labels[0] != 0 || labels[1] != 0 || labels[2] != 0 {
		t.Errorf("expected a single chained cluster, got %v", labels)
	}
	if labels[3] != labelNoise {
		t.Errorf("expected the far point to be noise, got %d", labels[3])
	}
}

func TestDBSCAN_Empty(t *testing.T) {
	if labels := dbscan(nil, 0.6, 2); len(labels) != 0 {
		t.Errorf("expected no labels, got %v", labels)
	}
}

func TestCosineDistance(t *testing.T) {
	a := vector{0: 1}
	b := vector{0: 1}
	c := vector{1: 1}

	if d := cosineDistance(a, b); math.Abs(d) > 1e-9 {
		t.Errorf("identical vectors distance = %f, want 0", d)
	}
	if d := cosineDistance(a, c); math.Abs(d-1) > 1e-9 {
		t.Errorf("orthogonal vectors distance = %f, want 1", d)
	}
}
