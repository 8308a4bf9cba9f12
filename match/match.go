// Package match selects the closest enrolled face for a query embedding.
// Distances are plain Euclidean in embedding space, lower meaning more
// similar. Candidate order is significant: callers pass embeddings aligned
// by index with their identity list, and ties keep the earliest candidate.
package match

import (
	"errors"
	"math"
)

var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// NoMatch is the index returned when no candidate is accepted.
const NoMatch = -1

// Euclidean returns the Euclidean distance between two embeddings.
func Euclidean(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// BestMatch returns the index of the candidate nearest to query together
// with its distance. It returns (NoMatch, 0) when candidates is empty or
// when the nearest candidate is not strictly below threshold. When several
// candidates share the minimum distance the first one wins, so repeated
// calls with the same input order always pick the same candidate.
func BestMatch(query []float64, candidates [][]float64, threshold float64) (int, float64, error) {
	best := NoMatch
	bestDistance := 0.0
	for i, candidate := range candidates {
		distance, err := Euclidean(query, candidate)
		if err != nil {
			return NoMatch, 0, err
		}
		if best == NoMatch || distance < bestDistance {
			best = i
			bestDistance = distance
		}
	}
	if best == NoMatch {
		return NoMatch, 0, nil
	}
	if bestDistance >= threshold {
		return NoMatch, 0, nil
	}
	return best, bestDistance, nil
}
