package ports

import (
	"context"

	"truck-route-service/internal/domain"
)

// Contract for sampling terrain elevation along a path.
type ElevationProvider interface {
	// Return one elevation value per point, best-effort: the provider may
	// return fewer samples than points on partial failure. Implementations
	// must accept arbitrarily long inputs and batch internally.
	GetElevations(ctx context.Context, points []domain.GeoPoint) ([]float64, error)
}
