package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/polyline"
	"truck-route-service/internal/ports"
)

type stubResolver struct {
	addresses map[string]ports.ResolvedAddress
}

func (s *stubResolver) Resolve(ctx context.Context, query string) (ports.ResolvedAddress, error) {
	r, ok := s.addresses[query]
	if !ok {
		return ports.ResolvedAddress{}, fmt.Errorf("resolve %q: %w", query, ports.ErrAddressNotFound)
	}
	return r, nil
}

type stubRouteProvider struct {
	sections []ports.RouteSection
	err      error
}

func (s *stubRouteProvider) GetRoutes(ctx context.Context, origin, destination domain.GeoPoint, mode string) ([]ports.RouteSection, error) {
	return s.sections, s.err
}

// stubElevation returns a fixed profile per waypoint count, so tests can
// target an individual candidate by giving its polyline a distinct length.
type stubElevation struct {
	profiles map[int][]float64
	errFor   map[int]error
}

func (s *stubElevation) GetElevations(ctx context.Context, points []domain.GeoPoint) ([]float64, error) {
	if err := s.errFor[len(points)]; err != nil {
		return nil, err
	}
	if profile, ok := s.profiles[len(points)]; ok {
		return profile, nil
	}
	return make([]float64, len(points)), nil
}

type stubCompletion struct {
	mu      sync.Mutex
	calls   int
	text    string
	err     error
	prompts []string
}

func (s *stubCompletion) Complete(ctx context.Context, system, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.text, s.err
}

func chicago() ports.ResolvedAddress {
	return ports.ResolvedAddress{
		Address:  domain.Address{Address: "Chicago, IL, USA", City: "Chicago", State: "IL", PostalCode: "60601"},
		Position: domain.GeoPoint{Lat: 41.88, Lon: -87.63},
	}
}

func dallas() ports.ResolvedAddress {
	return ports.ResolvedAddress{
		Address:  domain.Address{Address: "Dallas, TX, USA", City: "Dallas", State: "TX", PostalCode: "75201"},
		Position: domain.GeoPoint{Lat: 32.78, Lon: -96.8},
	}
}

func testOrder() domain.Order {
	return domain.Order{
		Pickup: domain.Location{
			Address: domain.Address{Address: "Chicago, IL"},
			Date:    "2026-03-01",
			Time:    "08:00",
		},
		Delivery: domain.Location{
			Address: domain.Address{Address: "Dallas, TX"},
			Date:    "2026-03-02",
			Time:    "17:00",
		},
		Contact: domain.Contact{Name: "A", Email: "a@x.com", Phone: "555"},
	}
}

// pathOfLength encodes a polyline with exactly n waypoints.
func pathOfLength(n int) string {
	points := make([]domain.GeoPoint, n)
	for i := range points {
		points[i] = domain.GeoPoint{Lat: 41.0 - float64(i)*0.1, Lon: -87.0 - float64(i)*0.1}
	}
	return polyline.Encode(points)
}

func newTestPlanner(t *testing.T, routes ports.RouteProvider, elev ports.ElevationProvider, completion ports.CompletionProvider) *RoutePlanner {
	t.Helper()

	resolver := &stubResolver{addresses: map[string]ports.ResolvedAddress{
		"Chicago, IL": chicago(),
		"Dallas, TX":  dallas(),
	}}

	planner, err := NewRoutePlanner(resolver, routes, elev, completion, RoutePlannerOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return planner
}

func TestPlanOrderRanksShorterFasterRouteFirst(t *testing.T) {
	routes := &stubRouteProvider{sections: []ports.RouteSection{
		{Polyline: pathOfLength(3), Miles: 900, DurationHours: 14},
		{Polyline: pathOfLength(4), Miles: 300, DurationHours: 5},
	}}
	completion := &stubCompletion{text: ""}

	planner := newTestPlanner(t, routes, &stubElevation{}, completion)

	plan, err := planner.PlanOrder(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Routes) != 2 {
		t.Fatalf("expected 2 ranked routes, got %d", len(plan.Routes))
	}

	if plan.Routes[0].Miles != 300 || plan.Routes[0].Rank != 1 {
		t.Errorf("rank 1 = %v miles (rank %d), want the 300-mile route", plan.Routes[0].Miles, plan.Routes[0].Rank)
	}
	if plan.Routes[1].Miles != 900 || plan.Routes[1].Rank != 2 {
		t.Errorf("rank 2 = %v miles (rank %d), want the 900-mile route", plan.Routes[1].Miles, plan.Routes[1].Rank)
	}

	for i, r := range plan.Routes {
		if len(r.AdverseConditions) != 0 {
			t.Errorf("route %d has unexpected conditions %v", i, r.AdverseConditions)
		}
	}

	// Order details come back resolved.
	if plan.Order.Pickup.City != "Chicago" || plan.Order.Delivery.City != "Dallas" {
		t.Errorf("order echo not resolved: pickup=%q delivery=%q", plan.Order.Pickup.City, plan.Order.Delivery.City)
	}
}

func TestPlanOrderWeatherConditionAttached(t *testing.T) {
	routes := &stubRouteProvider{sections: []ports.RouteSection{
		{Polyline: pathOfLength(3), Miles: 300, DurationHours: 5},
	}}
	completion := &stubCompletion{text: "Ice storms forecast across Missouri."}

	planner := newTestPlanner(t, routes, &stubElevation{}, completion)

	plan, err := planner.PlanOrder(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	conditions := plan.Routes[0].AdverseConditions
	if len(conditions) != 1 || conditions[0] != "Ice storms forecast across Missouri." {
		t.Fatalf("conditions = %v, want the weather text verbatim", conditions)
	}
}

func TestPlanOrderElevationFlag(t *testing.T) {
	routes := &stubRouteProvider{sections: []ports.RouteSection{
		{Polyline: pathOfLength(3), Miles: 300, DurationHours: 5},
		{Polyline: pathOfLength(4), Miles: 300, DurationHours: 5},
	}}
	elev := &stubElevation{profiles: map[int][]float64{
		3: {100, 700, 650},      // 600 jump between consecutive samples
		4: {100, 150, 200, 250}, // gentle profile
	}}

	planner := newTestPlanner(t, routes, elev, &stubCompletion{})

	plan, err := planner.PlanOrder(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The flat route outranks the flagged one.
	if len(plan.Routes[0].AdverseConditions) != 0 {
		t.Fatalf("rank 1 conditions = %v, want none", plan.Routes[0].AdverseConditions)
	}

	flagged := plan.Routes[1].AdverseConditions
	if len(flagged) != 1 || flagged[0] != "Significant elevation changes along route" {
		t.Fatalf("rank 2 conditions = %v, want the elevation flag", flagged)
	}
}

func TestPlanOrderRecoverableFailuresDegrade(t *testing.T) {
	// Weather fails for every candidate, elevation fails for candidate 2
	// (the 5-waypoint path). All three candidates still rank.
	routes := &stubRouteProvider{sections: []ports.RouteSection{
		{Polyline: pathOfLength(3), Miles: 300, DurationHours: 5},
		{Polyline: pathOfLength(5), Miles: 400, DurationHours: 6},
		{Polyline: pathOfLength(4), Miles: 500, DurationHours: 7},
	}}
	elev := &stubElevation{errFor: map[int]error{
		5: errors.New("elevation service unavailable"),
	}}
	completion := &stubCompletion{err: errors.New("completion service unavailable")}

	planner := newTestPlanner(t, routes, elev, completion)

	plan, err := planner.PlanOrder(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Routes) != 3 {
		t.Fatalf("expected 3 ranked routes, got %d", len(plan.Routes))
	}

	for i, r := range plan.Routes {
		if len(r.AdverseConditions) != 0 {
			t.Errorf("route %d conditions = %v, want empty after degraded enrichment", i, r.AdverseConditions)
		}
		if r.Rank != i+1 {
			t.Errorf("route %d rank = %d, want %d", i, r.Rank, i+1)
		}
	}
}

func TestPlanOrderMalformedPolylineExcludesCandidate(t *testing.T) {
	routes := &stubRouteProvider{sections: []ports.RouteSection{
		{Polyline: pathOfLength(3), Miles: 300, DurationHours: 5},
		{Polyline: "_p~iF", Miles: 200, DurationHours: 4}, // truncated
		{Polyline: pathOfLength(4), Miles: 500, DurationHours: 7},
	}}

	planner := newTestPlanner(t, routes, &stubElevation{}, &stubCompletion{})

	plan, err := planner.PlanOrder(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Routes) != 2 {
		t.Fatalf("expected 2 ranked routes after exclusion, got %d", len(plan.Routes))
	}
	for _, r := range plan.Routes {
		if r.Miles == 200 {
			t.Fatal("excluded candidate appeared in the ranked set")
		}
	}
}

func TestPlanOrderAddressNotFoundIsFatal(t *testing.T) {
	routes := &stubRouteProvider{sections: []ports.RouteSection{
		{Polyline: pathOfLength(3), Miles: 300, DurationHours: 5},
	}}
	planner := newTestPlanner(t, routes, &stubElevation{}, &stubCompletion{})

	order := testOrder()
	order.Pickup.Address.Address = "Nowhere, ZZ"

	_, err := planner.PlanOrder(context.Background(), order)
	if !errors.Is(err, ports.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestPlanOrderNoRoutesIsFatal(t *testing.T) {
	planner := newTestPlanner(t, &stubRouteProvider{}, &stubElevation{}, &stubCompletion{})

	_, err := planner.PlanOrder(context.Background(), testOrder())
	if !errors.Is(err, ErrNoRoutes) {
		t.Fatalf("expected ErrNoRoutes, got %v", err)
	}
}

func TestPlanOrderRoutingErrorIsFatal(t *testing.T) {
	routes := &stubRouteProvider{err: errors.New("router unavailable")}
	planner := newTestPlanner(t, routes, &stubElevation{}, &stubCompletion{})

	if _, err := planner.PlanOrder(context.Background(), testOrder()); err == nil {
		t.Fatal("expected an error")
	}
}
