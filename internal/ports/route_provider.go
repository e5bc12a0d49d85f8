package ports

import (
	"context"

	"truck-route-service/internal/domain"
)

// One route section as returned by the routing provider: an encoded polyline
// plus per-section cost and travel metrics. Absent numeric fields are zero.
type RouteSection struct {
	Polyline      string
	TollCost      float64
	FuelCost      float64
	Miles         float64
	DurationHours float64
}

// Contract for querying candidate routes between two points.
type RouteProvider interface {
	// Return candidate route sections from origin to destination for the
	// given transport mode (e.g. "truck"). An empty result is not an error;
	// callers decide whether zero candidates is fatal.
	GetRoutes(ctx context.Context, origin, destination domain.GeoPoint, mode string) ([]RouteSection, error)
}
