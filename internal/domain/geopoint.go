package domain

// Immutable geographic point (latitude, longitude).
// Produced by the polyline decoder; never mutated after construction.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Return the point as [lat, lon] for external API compatibility.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lat, p.Lon} }
