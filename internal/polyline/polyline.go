// Package polyline implements the standard encoded-polyline scheme used by
// mapping providers: per-axis deltas, zig-zag signed, split into 5-bit groups
// offset by 63, with bit 6 as a continuation flag.
package polyline

import (
	"fmt"
	"truck-route-service/internal/domain"
)

// Coordinate scale: accumulated integer deltas map to degrees at 1e-5.
const precision = 1e-5

// DecodeError reports malformed input: a varint cut off mid-sequence, or a
// latitude delta with no matching longitude delta.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode polyline: %s at byte %d", e.Reason, e.Offset)
}

// Decode converts an encoded polyline string into an ordered point sequence.
// The empty string decodes to an empty sequence. Malformed input fails with a
// DecodeError rather than silently truncating the path.
func Decode(encoded string) ([]domain.GeoPoint, error) {
	points := make([]domain.GeoPoint, 0, len(encoded)/4)
	index, lat, lon := 0, 0, 0

	for index < len(encoded) {
		start := index

		dLat, next, err := decodeDelta(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next

		if index >= len(encoded) {
			return nil, &DecodeError{Offset: start, Reason: "latitude delta without longitude delta"}
		}

		dLon, next, err := decodeDelta(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next

		lat += dLat
		lon += dLon

		points = append(points, domain.GeoPoint{
			Lat: float64(lat) * precision,
			Lon: float64(lon) * precision,
		})
	}

	return points, nil
}

// decodeDelta reads one zig-zag encoded integer starting at index.
// Payload bits accumulate low-to-high; a character below 0x20 (after the -63
// offset) terminates the varint.
func decodeDelta(encoded string, index int) (delta, next int, err error) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, 0, &DecodeError{Offset: index, Reason: "unterminated coordinate delta"}
		}

		b := int(encoded[index]) - 63
		if b < 0 {
			return 0, 0, &DecodeError{Offset: index, Reason: fmt.Sprintf("invalid character %q", encoded[index])}
		}
		index++

		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	// Zig-zag: odd values are negated one's complements.
	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// Encode converts a point sequence back into an encoded polyline string.
// Decode(Encode(pts)) reproduces pts to 1e-5 degrees.
func Encode(points []domain.GeoPoint) string {
	out := make([]byte, 0, len(points)*8)
	prevLat, prevLon := 0, 0

	for _, p := range points {
		lat := round5(p.Lat)
		lon := round5(p.Lon)

		out = encodeDelta(out, lat-prevLat)
		out = encodeDelta(out, lon-prevLon)

		prevLat, prevLon = lat, lon
	}

	return string(out)
}

func round5(deg float64) int {
	scaled := deg / precision
	if scaled < 0 {
		return int(scaled - 0.5)
	}
	return int(scaled + 0.5)
}

func encodeDelta(out []byte, delta int) []byte {
	v := delta << 1
	if delta < 0 {
		v = ^v
	}
	for v >= 0x20 {
		out = append(out, byte((0x20|(v&0x1f))+63))
		v >>= 5
	}
	return append(out, byte(v+63))
}
