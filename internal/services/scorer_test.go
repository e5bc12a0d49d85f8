package services

import (
	"math"
	"testing"
)

func TestScorePerfectRoute(t *testing.T) {
	w := DefaultScoreWeights()

	score := w.Score(0, 0, 0)
	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("score = %v, want 1.0", score)
	}
}

func TestScoreAtCaps(t *testing.T) {
	w := DefaultScoreWeights()

	// Duration and distance terms zero out at their caps; only the
	// conditions term remains.
	score := w.Score(12, 800, 0)
	if math.Abs(score-0.3) > 1e-9 {
		t.Fatalf("score = %v, want 0.3", score)
	}
}

func TestScoreBeyondCapsFloorsAtZero(t *testing.T) {
	w := DefaultScoreWeights()

	score := w.Score(40, 5000, 10)
	if score != 0 {
		t.Fatalf("score = %v, want 0", score)
	}
}

func TestScoreDurationMonotonic(t *testing.T) {
	w := DefaultScoreWeights()

	prev := math.Inf(1)
	for _, hours := range []float64{0, 2, 5, 8, 11, 12, 20} {
		score := w.Score(hours, 100, 1)
		if score > prev {
			t.Fatalf("score increased from %v to %v at duration %v", prev, score, hours)
		}
		prev = score
	}
}

func TestScoreMilesMonotonic(t *testing.T) {
	w := DefaultScoreWeights()

	prev := math.Inf(1)
	for _, miles := range []float64{0, 50, 200, 500, 800, 1200} {
		score := w.Score(3, miles, 1)
		if score > prev {
			t.Fatalf("score increased from %v to %v at %v miles", prev, score, miles)
		}
		prev = score
	}
}

func TestScoreConditionsMonotonic(t *testing.T) {
	w := DefaultScoreWeights()

	prev := math.Inf(1)
	for conditions := 0; conditions <= 7; conditions++ {
		score := w.Score(3, 100, conditions)
		if score > prev {
			t.Fatalf("score increased from %v to %v at %d conditions", prev, score, conditions)
		}
		prev = score
	}
}

func TestScorePenaltyPerCondition(t *testing.T) {
	w := DefaultScoreWeights()

	// Each condition removes penalty*weight from the total until the
	// conditions term floors.
	without := w.Score(3, 100, 0)
	with := w.Score(3, 100, 1)

	if math.Abs((without-with)-0.3*0.2) > 1e-9 {
		t.Fatalf("one condition changed score by %v, want %v", without-with, 0.3*0.2)
	}
}
