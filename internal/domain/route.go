package domain

// One proposed path between origin and destination, built from a single
// routing-provider route section. Score and Rank start at their zero values
// and are the only fields mutated after construction (filled in by ranking).
type RouteCandidate struct {
	TollCost          float64
	FuelCost          float64
	Miles             float64
	DurationHours     float64
	AdverseConditions []string
	Score             float64
	Rank              int
}

// Candidate routes sorted descending by score with contiguous 1-based ranks.
// Equal scores keep their original relative order (stable sort).
type RankedRouteSet []RouteCandidate

// The planned result for a single order: the echoed order details plus the
// ranked candidate routes. This is the one artifact the pipeline returns.
type OrderPlan struct {
	Order  Order
	Routes RankedRouteSet
}
