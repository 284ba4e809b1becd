package analyzer

const (
	labelUnclassified = -2
	labelNoise        = -1
)

// dbscan clusters unit vectors by cosine distance. The result parallels
// points: clusters are numbered from 0 in discovery order, noise points get
// -1. Iteration is strictly index-ordered and there is no random
// initialization, so the same input always yields the same labels.
func dbscan(points []vector, eps float64, minPoints int) []int {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = labelUnclassified
	}

	cluster := 0
	for i := range points {
		if labels[i] != labelUnclassified {
			continue
		}
		neighbors := regionQuery(points, i, eps)
		if len(neighbors) < minPoints {
			labels[i] = labelNoise
			continue
		}

		labels[i] = cluster
		queue := append([]int(nil), neighbors...)
		for head := 0; head < len(queue); head++ {
			j := queue[head]
			if labels[j] == labelNoise {
				// Border point reached from a core point.
				labels[j] = cluster
			}
			if labels[j] != labelUnclassified {
				continue
			}
			labels[j] = cluster
			jNeighbors := regionQuery(points, j, eps)
			if len(jNeighbors) >= minPoints {
				queue = append(queue, jNeighbors...)
			}
		}
		cluster++
	}
	return labels
}

// regionQuery returns the indexes within eps of point i, i itself included.
func regionQuery(points []vector, i int, eps float64) []int {
	var neighbors []int
	for j := range points {
		if cosineDistance(points[i], points[j]) <= eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// cosineDistance is 1 minus the dot product, which holds for unit vectors.
func cosineDistance(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, av := range a {
		dot += av * b[idx]
	}
	return 1 - dot
}
