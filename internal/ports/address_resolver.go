package ports

import (
	"context"
	"errors"

	"truck-route-service/internal/domain"
)

// Returned when the resolution service finds no match for a query.
var ErrAddressNotFound = errors.New("address not found")

// Contract for turning a free-text address into a structured postal address
// with coordinates.
type AddressResolver interface {
	// Resolve a free-text address. Returns ErrAddressNotFound (possibly
	// wrapped) when the provider has no match.
	Resolve(ctx context.Context, query string) (ResolvedAddress, error)
}

// A structured address plus the coordinates the provider resolved it to.
type ResolvedAddress struct {
	Address  domain.Address
	Position domain.GeoPoint
}
