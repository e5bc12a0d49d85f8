package services

// ScoreWeights holds the tunable parameters of the route score.
// Each term is clamped at zero before weighting, so with weights summing to 1
// the score stays within [0, 1] for typical inputs.
type ScoreWeights struct {
	DurationWeight   float64
	DistanceWeight   float64
	ConditionsWeight float64

	// Caps: a route at or beyond the cap contributes zero for that term.
	MaxDurationHours float64
	MaxMiles         float64

	// Penalty subtracted from the conditions term per adverse condition.
	ConditionPenalty float64
}

// DefaultScoreWeights returns the fixed design parameters: 0.4/0.3/0.3
// weights, a 12-hour duration cap, an 800-mile distance cap, and a 0.2
// penalty per adverse condition.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		DurationWeight:   0.4,
		DistanceWeight:   0.3,
		ConditionsWeight: 0.3,
		MaxDurationHours: 12,
		MaxMiles:         800,
		ConditionPenalty: 0.2,
	}
}

// Score computes the weighted route score. Pure and total: durations and
// distances beyond their caps simply floor that term at zero.
func (w ScoreWeights) Score(durationHours, miles float64, conditionCount int) float64 {
	durationTerm := clampUnit(1 - durationHours/w.MaxDurationHours)
	distanceTerm := clampUnit(1 - miles/w.MaxMiles)
	conditionsTerm := clampUnit(1 - w.ConditionPenalty*float64(conditionCount))

	return w.DurationWeight*durationTerm +
		w.DistanceWeight*distanceTerm +
		w.ConditionsWeight*conditionsTerm
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
