package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/platform/obs"
	"truck-route-service/internal/ports"
)

// Returned when the routing provider yields no candidate routes for an order.
var ErrNoRoutes = errors.New("no candidate routes")

// RoutePlanner turns a freight order into a ranked set of candidate routes.
//
// It coordinates:
//   - Address resolution with optional persistent geocode caching
//   - A candidate-route query against the routing provider
//   - Concurrent per-candidate enrichment (elevation, weather assessment)
//   - Scoring and dense ranking
//
// All collaborators are injected; the planner holds no ambient state and is
// safe for concurrent use.
type RoutePlanner struct {
	resolver   ports.AddressResolver
	routes     ports.RouteProvider
	elevation  ports.ElevationProvider
	completion ports.CompletionProvider

	geocodes    ports.GeocodeCache    // optional
	assessments ports.AssessmentCache // optional

	weights       ScoreWeights
	mode          string
	callTimeout   time.Duration
	assessmentTTL time.Duration
	maxInFlight   int
}

// Optional planner settings; zero values select the defaults.
type RoutePlannerOptions struct {
	Geocodes      ports.GeocodeCache
	Assessments   ports.AssessmentCache
	Weights       ScoreWeights
	Mode          string
	CallTimeout   time.Duration
	AssessmentTTL time.Duration
	MaxInFlight   int
}

func NewRoutePlanner(
	resolver ports.AddressResolver,
	routes ports.RouteProvider,
	elevation ports.ElevationProvider,
	completion ports.CompletionProvider,
	opts RoutePlannerOptions,
) (*RoutePlanner, error) {
	if resolver == nil || routes == nil || elevation == nil || completion == nil {
		return nil, errors.New("new route planner: all providers must be non-nil")
	}

	weights := opts.Weights
	if weights == (ScoreWeights{}) {
		weights = DefaultScoreWeights()
	}

	mode := opts.Mode
	if mode == "" {
		mode = "truck"
	}

	callTimeout := opts.CallTimeout
	if callTimeout == 0 {
		callTimeout = 30 * time.Second
	}

	assessmentTTL := opts.AssessmentTTL
	if assessmentTTL == 0 {
		assessmentTTL = 6 * time.Hour
	}

	maxInFlight := opts.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = 5
	}

	return &RoutePlanner{
		resolver:      resolver,
		routes:        routes,
		elevation:     elevation,
		completion:    completion,
		geocodes:      opts.Geocodes,
		assessments:   opts.Assessments,
		weights:       weights,
		mode:          mode,
		callTimeout:   callTimeout,
		assessmentTTL: assessmentTTL,
		maxInFlight:   maxInFlight,
	}, nil
}

// PlanOrder resolves the order's endpoints, queries candidate routes, enriches
// them concurrently, and returns the order echoed back with its ranked routes.
//
// Address resolution and the routing query are fatal when they fail. Failures
// inside a single candidate's enrichment are not: recoverable provider errors
// degrade that candidate, and a malformed polyline drops only that candidate.
func (p *RoutePlanner) PlanOrder(ctx context.Context, order domain.Order) (_ *domain.OrderPlan, err error) {
	defer obs.Time(ctx, "planner.PlanOrder")(&err)

	pickup, err := p.resolveLocation(ctx, order.Pickup)
	if err != nil {
		return nil, fmt.Errorf("plan order: resolve pickup: %w", err)
	}

	delivery, err := p.resolveLocation(ctx, order.Delivery)
	if err != nil {
		return nil, fmt.Errorf("plan order: resolve delivery: %w", err)
	}

	order.Pickup.Address = pickup.Address
	order.Delivery.Address = delivery.Address

	routeCtx, cancel := p.callContext(ctx)
	sections, err := p.routes.GetRoutes(routeCtx, pickup.Position, delivery.Position, p.mode)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("plan order: get routes: %w", err)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("plan order: %w", ErrNoRoutes)
	}

	req := assessmentRequest{
		Origin:      locationLabel(order.Pickup),
		Destination: locationLabel(order.Delivery),
		Date:        order.Pickup.Date,
	}

	// Fan out enrichment across candidates. Each branch is independent;
	// results land in an indexed slice so ranking sees input order.
	results := make([]CandidateResult, len(sections))
	sem := make(chan struct{}, p.maxInFlight)
	var wg sync.WaitGroup

	for i, section := range sections {
		wg.Add(1)
		go func(i int, section ports.RouteSection) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = p.enrichCandidate(ctx, section, req)
		}(i, section)
	}

	wg.Wait()

	candidates := make([]domain.RouteCandidate, 0, len(results))
	for i, res := range results {
		if res.Status == CandidateExcluded {
			log.Printf("op=plan candidate=%d excluded err=%v", i, res.Err)
			continue
		}
		candidates = append(candidates, res.Candidate)
	}

	return &domain.OrderPlan{
		Order:  order,
		Routes: RankRoutes(candidates, p.weights),
	}, nil
}

// resolveLocation resolves the location's free-text address, going through
// the geocode cache when one is configured. Cache write failures are logged
// and absorbed; resolution failures are fatal to the order.
func (p *RoutePlanner) resolveLocation(ctx context.Context, loc domain.Location) (ports.ResolvedAddress, error) {
	query := normalizeQuery(loc.Address.Address)
	if query == "" {
		return ports.ResolvedAddress{}, errors.New("location address must be non-empty")
	}

	if p.geocodes != nil {
		cached, ok, err := p.geocodes.Get(ctx, query)
		if err != nil {
			log.Printf("op=geocode.cache.get query=%q err=%v", query, err)
		} else if ok {
			return cached, nil
		}
	}

	callCtx, cancel := p.callContext(ctx)
	defer cancel()

	resolved, err := p.resolver.Resolve(callCtx, query)
	if err != nil {
		return ports.ResolvedAddress{}, fmt.Errorf("resolve %q: %w", query, err)
	}

	if p.geocodes != nil {
		if err := p.geocodes.Put(ctx, query, resolved); err != nil {
			log.Printf("op=geocode.cache.put query=%q err=%v", query, err)
		}
	}

	return resolved, nil
}

// normalizeQuery collapses whitespace so cache keys stay consistent.
func normalizeQuery(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func locationLabel(loc domain.Location) string {
	if loc.City != "" && loc.State != "" {
		return loc.City + ", " + loc.State
	}
	return loc.Address.Address
}
