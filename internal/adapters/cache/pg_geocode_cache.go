package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"truck-route-service/internal/platform/obs"
	"truck-route-service/internal/ports"
)

// PGGeocodeCache is a Postgres-backed cache mapping address queries to
// resolved addresses and coordinates. Query keys are expected to be
// normalized by the caller.
type PGGeocodeCache struct {
	DB *sql.DB
}

func NewPGGeocodeCache(db *sql.DB) *PGGeocodeCache {
	return &PGGeocodeCache{DB: db}
}

// Fetch the cached resolution for one query. A missing row is a miss, not
// an error.
func (s *PGGeocodeCache) Get(ctx context.Context, query string) (_ ports.ResolvedAddress, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return ports.ResolvedAddress{}, false, errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(query) == "" {
		return ports.ResolvedAddress{}, false, errors.New("get geocode cache: query must not be empty")
	}

	q := `
	SELECT address, city, state, postal_code, lat, lon
    FROM geocode_cache
    WHERE query = $1;
	`

	var r ports.ResolvedAddress
	row := s.DB.QueryRowContext(ctx, q, query)
	err = row.Scan(
		&r.Address.Address,
		&r.Address.City,
		&r.Address.State,
		&r.Address.PostalCode,
		&r.Position.Lat,
		&r.Position.Lon,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.ResolvedAddress{}, false, nil
	}
	if err != nil {
		return ports.ResolvedAddress{}, false, fmt.Errorf("get geocode cache: scan row: %w", err)
	}

	return r, true, nil
}

// Store one query -> resolution mapping, replacing any existing row.
func (s *PGGeocodeCache) Put(ctx context.Context, query string, resolved ports.ResolvedAddress) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(query) == "" {
		return errors.New("insert geocode cache: query must not be empty")
	}

	q := `
	INSERT INTO geocode_cache (query, address, city, state, postal_code, lat, lon)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (query) DO UPDATE
	SET address = EXCLUDED.address,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		postal_code = EXCLUDED.postal_code,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`

	_, err := s.DB.ExecContext(ctx, q,
		query,
		resolved.Address.Address,
		resolved.Address.City,
		resolved.Address.State,
		resolved.Address.PostalCode,
		resolved.Position.Lat,
		resolved.Position.Lon,
	)
	if err != nil {
		return fmt.Errorf("insert geocode cache query=%q: %w", query, err)
	}

	return nil
}

// Initialize the geocode cache schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        address TEXT NOT NULL,
        city TEXT NOT NULL,
        state TEXT NOT NULL,
        postal_code TEXT NOT NULL,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL
    );
	`

	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init schema: create geocode_cache: %w", err)
	}

	return nil
}
