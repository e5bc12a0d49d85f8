// Package elevation implements the ElevationProvider port against an
// open-elevation style batch lookup API.
package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/platform/obs"
)

// The provider rejects oversized batches; longer paths are chunked.
const maxBatchSize = 256

type Client struct {
	session *http.Client
	baseURL string
}

func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("elevation base url is empty")
	}

	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}, nil
}

type lookupRequest struct {
	Locations []lookupLocation `json:"locations"`
}

type lookupLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// GetElevations returns one elevation sample per point, chunking long paths
// into bounded batches. Best-effort: a batch that comes back short just
// yields fewer samples; only transport and decode failures are errors.
func (c *Client) GetElevations(ctx context.Context, points []domain.GeoPoint) (_ []float64, err error) {
	defer obs.Time(ctx, "elevation.GetElevations")(&err)

	if len(points) == 0 {
		return []float64{}, nil
	}

	samples := make([]float64, 0, len(points))
	for start := 0; start < len(points); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(points) {
			end = len(points)
		}

		batch, err := c.lookup(ctx, points[start:end])
		if err != nil {
			return nil, fmt.Errorf("get elevations: batch %d-%d: %w", start, end, err)
		}

		samples = append(samples, batch...)
	}

	return samples, nil
}

func (c *Client) lookup(ctx context.Context, points []domain.GeoPoint) ([]float64, error) {
	body := lookupRequest{Locations: make([]lookupLocation, 0, len(points))}
	for _, p := range points {
		body.Locations = append(body.Locations, lookupLocation{Latitude: p.Lat, Longitude: p.Lon})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/lookup", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}

	out := make([]float64, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		out = append(out, r.Elevation)
	}

	return out, nil
}
