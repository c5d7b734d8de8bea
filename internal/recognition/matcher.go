package recognition

import "math"

// Match is an accepted identity match.
type Match struct {
	Name     string
	Distance float64
}

// Match finds the gallery entry nearest to the probe encoding and accepts
// it only if the distance is strictly below threshold. Ties on the minimum
// distance go to the first-loaded entry. An empty gallery never matches.
func (g *Gallery) Match(probe []float32, threshold float64) (Match, bool) {
	best := -1
	bestDistance := math.Inf(1)

	for i, entry := range g.entries {
		d := euclideanDistance(probe, entry.Encoding)
		if d < bestDistance {
			best = i
			bestDistance = d
		}
	}

	if best < 0 || bestDistance >= threshold {
		return Match{}, false
	}

	return Match{Name: g.entries[best].Name, Distance: bestDistance}, true
}

func euclideanDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
