package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/platform/obs"
	"truck-route-service/internal/ports"
)

type geocodeResponse struct {
	Items []struct {
		Address struct {
			Label      string `json:"label"`
			City       string `json:"city"`
			StateCode  string `json:"stateCode"`
			PostalCode string `json:"postalCode"`
		} `json:"address"`
		Position struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"position"`
	} `json:"items"`
}

// Resolve implements ports.AddressResolver against the provider's geocoding
// endpoint. An empty result set maps to ports.ErrAddressNotFound.
func (c *Client) Resolve(ctx context.Context, query string) (_ ports.ResolvedAddress, err error) {
	defer obs.Time(ctx, "routing.Resolve")(&err)

	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return ports.ResolvedAddress{}, errors.New("resolve address: query must be non-empty")
	}

	endpoint := c.geocodeURL + "/geocode"

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", query)
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.ResolvedAddress{}, fmt.Errorf("resolve address: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.ResolvedAddress{}, fmt.Errorf("resolve address: decode response: %w", err)
	}

	if len(decoded.Items) == 0 {
		return ports.ResolvedAddress{}, fmt.Errorf("resolve address %q: %w", query, ports.ErrAddressNotFound)
	}

	item := decoded.Items[0]

	return ports.ResolvedAddress{
		Address: domain.Address{
			Address:    item.Address.Label,
			City:       item.Address.City,
			State:      item.Address.StateCode,
			PostalCode: item.Address.PostalCode,
		},
		Position: domain.GeoPoint{
			Lat: item.Position.Lat,
			Lon: item.Position.Lng,
		},
	}, nil
}
