package services

import (
	"slices"

	"truck-route-service/internal/domain"
)

// RankRoutes scores candidates, sorts them descending by score, and assigns
// dense 1-based ranks. The sort is stable: equal scores keep the relative
// order the candidates arrived in, so output order never depends on how
// concurrent enrichment results landed.
func RankRoutes(candidates []domain.RouteCandidate, weights ScoreWeights) domain.RankedRouteSet {
	ranked := make(domain.RankedRouteSet, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		ranked[i].Score = weights.Score(
			ranked[i].DurationHours,
			ranked[i].Miles,
			len(ranked[i].AdverseConditions),
		)
	}

	slices.SortStableFunc(ranked, func(a, b domain.RouteCandidate) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
