package match

import (
	"errors"
	"math"
	"testing"
)

func embedding(first float64, rest ...float64) []float64 {
	e := make([]float64, 128)
	e[0] = first
	copy(e[1:], rest)
	return e
}

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{"zero", embedding(0), embedding(0), 0},
		{"single axis", embedding(0), embedding(3), 3},
		{"two axes", embedding(0, 0), embedding(3, 4), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Euclidean(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Euclidean() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Euclidean() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEuclideanDimensionMismatch(t *testing.T) {
	_, err := Euclidean(make([]float64, 128), make([]float64, 64))
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Euclidean() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestBestMatchEmptyCandidates(t *testing.T) {
	idx, distance, err := BestMatch(embedding(1), nil, 0.6)
	if err != nil {
		t.Fatalf("BestMatch() error = %v", err)
	}
	if idx != NoMatch || distance != 0 {
		t.Errorf("BestMatch() = (%d, %v), want (NoMatch, 0)", idx, distance)
	}
}

func TestBestMatchSelectsNearest(t *testing.T) {
	candidates := [][]float64{
		embedding(10),
		embedding(0.1),
		embedding(5),
	}
	idx, distance, err := BestMatch(embedding(0), candidates, 0.6)
	if err != nil {
		t.Fatalf("BestMatch() error = %v", err)
	}
	if idx != 1 {
		t.Errorf("BestMatch() index = %d, want 1", idx)
	}
	if math.Abs(distance-0.1) > 1e-9 {
		t.Errorf("BestMatch() distance = %v, want 0.1", distance)
	}
}

func TestBestMatchTieBreakKeepsFirst(t *testing.T) {
	candidates := [][]float64{
		embedding(0.2),
		embedding(-0.2),
		embedding(0.2),
	}
	for i := 0; i < 10; i++ {
		idx, _, err := BestMatch(embedding(0), candidates, 0.6)
		if err != nil {
			t.Fatalf("BestMatch() error = %v", err)
		}
		if idx != 0 {
			t.Fatalf("BestMatch() index = %d, want 0 (first of tied minima)", idx)
		}
	}
}

func TestBestMatchThreshold(t *testing.T) {
	candidates := [][]float64{embedding(0.5)}
	tests := []struct {
		name      string
		threshold float64
		wantIdx   int
	}{
		{"below threshold", 0.6, 0},
		{"equal to threshold rejected", 0.5, NoMatch},
		{"above threshold rejected", 0.3, NoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, _, err := BestMatch(embedding(0), candidates, tt.threshold)
			if err != nil {
				t.Fatalf("BestMatch() error = %v", err)
			}
			if idx != tt.wantIdx {
				t.Errorf("BestMatch() index = %d, want %d", idx, tt.wantIdx)
			}
		})
	}
}

// Raising the threshold may only turn a rejection into a match, never the
// other way around.
func TestBestMatchThresholdMonotonic(t *testing.T) {
	candidates := [][]float64{embedding(0.4), embedding(0.7)}
	query := embedding(0)
	prevMatched := false
	for _, threshold := range []float64{0.1, 0.3, 0.5, 0.6, 0.9, 2.0} {
		idx, _, err := BestMatch(query, candidates, threshold)
		if err != nil {
			t.Fatalf("BestMatch() error = %v", err)
		}
		matched := idx != NoMatch
		if prevMatched && !matched {
			t.Fatalf("threshold %v lost a match accepted at a lower threshold", threshold)
		}
		prevMatched = matched
	}
}

func TestBestMatchCorruptCandidate(t *testing.T) {
	candidates := [][]float64{embedding(0.1), make([]float64, 64)}
	_, _, err := BestMatch(embedding(0), candidates, 0.6)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("BestMatch() error = %v, want ErrDimensionMismatch", err)
	}
}
