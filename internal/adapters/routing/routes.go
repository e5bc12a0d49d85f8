package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/platform/obs"
	"truck-route-service/internal/ports"
)

// Route alternatives requested per query, in addition to the preferred route.
const routeAlternatives = 3

const (
	metersPerMile  = 1609.344
	secondsPerHour = 3600
)

type routesResponse struct {
	Routes []struct {
		Sections []struct {
			Polyline string `json:"polyline"`
			Summary  struct {
				Length   float64 `json:"length"`
				Duration float64 `json:"duration"`
				BaseCost float64 `json:"baseCost"`
			} `json:"summary"`
			Tolls []struct {
				Fares []struct {
					Price struct {
						Value float64 `json:"value"`
					} `json:"price"`
				} `json:"fares"`
			} `json:"tolls"`
		} `json:"sections"`
	} `json:"routes"`
}

// GetRoutes implements ports.RouteProvider. Each returned route section
// becomes one candidate: length and duration convert to miles and hours,
// toll fares sum per section, and absent numeric fields stay zero.
func (c *Client) GetRoutes(
	ctx context.Context,
	origin, destination domain.GeoPoint,
	mode string,
) (_ []ports.RouteSection, err error) {
	defer obs.Time(ctx, "routing.GetRoutes")(&err)

	endpoint := c.routerURL + "/routes"

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("transportMode", mode)
		q.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lon))
		q.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lon))
		q.Set("alternatives", fmt.Sprintf("%d", routeAlternatives))
		q.Set("return", "polyline,summary,tolls")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get routes: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded routesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("get routes: decode response: %w", err)
	}

	sections := make([]ports.RouteSection, 0, len(decoded.Routes))
	for _, route := range decoded.Routes {
		for _, s := range route.Sections {
			tollCost := 0.0
			for _, toll := range s.Tolls {
				for _, fare := range toll.Fares {
					tollCost += fare.Price.Value
				}
			}

			sections = append(sections, ports.RouteSection{
				Polyline:      s.Polyline,
				TollCost:      tollCost,
				FuelCost:      s.Summary.BaseCost,
				Miles:         s.Summary.Length / metersPerMile,
				DurationHours: s.Summary.Duration / secondsPerHour,
			})
		}
	}

	return sections, nil
}
