package services

import (
	"testing"

	"truck-route-service/internal/domain"
)

func TestRankRoutesDistinctScores(t *testing.T) {
	candidates := []domain.RouteCandidate{
		{Miles: 700, DurationHours: 11},
		{Miles: 100, DurationHours: 2},
		{Miles: 400, DurationHours: 6},
	}

	ranked := RankRoutes(candidates, DefaultScoreWeights())

	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked candidates, got %d", len(ranked))
	}

	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Errorf("position %d has rank %d, want %d", i, r.Rank, i+1)
		}
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("score increased from rank %d to rank %d", i, i+1)
		}
	}

	// The short, fast route wins.
	if ranked[0].Miles != 100 {
		t.Errorf("best route has %v miles, want 100", ranked[0].Miles)
	}
	if ranked[2].Miles != 700 {
		t.Errorf("worst route has %v miles, want 700", ranked[2].Miles)
	}
}

func TestRankRoutesStableForTies(t *testing.T) {
	// Identical metrics, distinguishable only by toll cost.
	candidates := []domain.RouteCandidate{
		{Miles: 200, DurationHours: 4, TollCost: 1},
		{Miles: 200, DurationHours: 4, TollCost: 2},
		{Miles: 200, DurationHours: 4, TollCost: 3},
	}

	ranked := RankRoutes(candidates, DefaultScoreWeights())

	for i, want := range []float64{1, 2, 3} {
		if ranked[i].TollCost != want {
			t.Errorf("position %d has toll %v, want %v (input order not preserved)", i, ranked[i].TollCost, want)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("position %d has rank %d, want %d", i, ranked[i].Rank, i+1)
		}
	}
}

func TestRankRoutesConditionsPenalize(t *testing.T) {
	candidates := []domain.RouteCandidate{
		{Miles: 200, DurationHours: 4, AdverseConditions: []string{"Snow in the mountains", "Significant elevation changes along route"}},
		{Miles: 200, DurationHours: 4},
	}

	ranked := RankRoutes(candidates, DefaultScoreWeights())

	if len(ranked[0].AdverseConditions) != 0 {
		t.Fatalf("clean route should rank first, got conditions %v", ranked[0].AdverseConditions)
	}
	if ranked[1].Rank != 2 {
		t.Fatalf("penalized route rank = %d, want 2", ranked[1].Rank)
	}
}

func TestRankRoutesEmpty(t *testing.T) {
	ranked := RankRoutes(nil, DefaultScoreWeights())
	if len(ranked) != 0 {
		t.Fatalf("expected empty ranked set, got %d", len(ranked))
	}
}

func TestRankRoutesDoesNotMutateInput(t *testing.T) {
	candidates := []domain.RouteCandidate{
		{Miles: 100, DurationHours: 2},
		{Miles: 400, DurationHours: 6},
	}

	_ = RankRoutes(candidates, DefaultScoreWeights())

	for i, c := range candidates {
		if c.Rank != 0 || c.Score != 0 {
			t.Errorf("input candidate %d was mutated: rank=%d score=%v", i, c.Rank, c.Score)
		}
	}
}
