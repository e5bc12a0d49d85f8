package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/polyline"
	"truck-route-service/internal/ports"
)

// Elevation delta between consecutive samples that flags a route, in the
// elevation provider's unit.
const elevationJumpThreshold = 500.0

// Fixed adverse-condition literal for steep elevation profiles.
const elevationConditionText = "Significant elevation changes along route"

// CandidateStatus tells the ranking stage how enrichment went for one
// candidate: fully enriched, partially enriched after a recoverable provider
// failure, or excluded from ranking entirely.
type CandidateStatus int

const (
	CandidateOK CandidateStatus = iota
	CandidateDegraded
	CandidateExcluded
)

// Outcome of enriching a single candidate. Err is the excluding failure when
// Status is CandidateExcluded; for CandidateDegraded it records the
// recoverable failure that was absorbed.
type CandidateResult struct {
	Candidate domain.RouteCandidate
	Status    CandidateStatus
	Err       error
}

// Context for the weather assessment prompt: where the route runs and when.
type assessmentRequest struct {
	Origin      string
	Destination string
	Date        string
}

func (r assessmentRequest) cacheKey() string {
	return r.Origin + "|" + r.Destination + "|" + r.Date
}

// enrichCandidate turns one raw route section into a RouteCandidate.
//
// A malformed polyline excludes the candidate (the batch survives). Elevation
// and weather failures degrade: the candidate keeps an empty enrichment for
// the failed signal so ranking can proceed.
func (p *RoutePlanner) enrichCandidate(
	ctx context.Context,
	section ports.RouteSection,
	req assessmentRequest,
) CandidateResult {
	candidate := domain.RouteCandidate{
		TollCost:      section.TollCost,
		FuelCost:      section.FuelCost,
		Miles:         section.Miles,
		DurationHours: section.DurationHours,
	}

	waypoints, err := polyline.Decode(section.Polyline)
	if err != nil {
		return CandidateResult{
			Status: CandidateExcluded,
			Err:    fmt.Errorf("enrich candidate: %w", err),
		}
	}

	status := CandidateOK
	var degradedErr error

	weather, err := p.assessWeather(ctx, req)
	if err != nil {
		log.Printf("op=enrich stage=weather origin=%q destination=%q err=%v", req.Origin, req.Destination, err)
		status = CandidateDegraded
		degradedErr = err
		weather = ""
	}
	if strings.TrimSpace(weather) != "" {
		candidate.AdverseConditions = append(candidate.AdverseConditions, weather)
	}

	flagged, err := p.elevationFlag(ctx, waypoints)
	if err != nil {
		log.Printf("op=enrich stage=elevation points=%d err=%v", len(waypoints), err)
		status = CandidateDegraded
		if degradedErr == nil {
			degradedErr = err
		}
		flagged = false
	}
	if flagged {
		candidate.AdverseConditions = append(candidate.AdverseConditions, elevationConditionText)
	}

	return CandidateResult{Candidate: candidate, Status: status, Err: degradedErr}
}

// elevationFlag samples elevation along the waypoints and reports whether any
// two consecutive samples differ by more than the jump threshold.
func (p *RoutePlanner) elevationFlag(ctx context.Context, waypoints []domain.GeoPoint) (bool, error) {
	if len(waypoints) < 2 {
		return false, nil
	}

	ctx, cancel := p.callContext(ctx)
	defer cancel()

	samples, err := p.elevation.GetElevations(ctx, waypoints)
	if err != nil {
		return false, fmt.Errorf("get elevations: %w", err)
	}

	// Best-effort contract: the provider may return fewer samples than points.
	for i := 1; i < len(samples); i++ {
		diff := samples[i] - samples[i-1]
		if diff < 0 {
			diff = -diff
		}
		if diff > elevationJumpThreshold {
			return true, nil
		}
	}

	return false, nil
}

// assessWeather returns a free-text weather/hazard assessment for the route,
// consulting the assessment cache before prompting the completion provider.
func (p *RoutePlanner) assessWeather(ctx context.Context, req assessmentRequest) (string, error) {
	key := req.cacheKey()

	if p.assessments != nil {
		cached, ok, err := p.assessments.Get(ctx, key)
		if err != nil {
			log.Printf("op=assessment.cache.get key=%q err=%v", key, err)
		} else if ok {
			return cached, nil
		}
	}

	callCtx, cancel := p.callContext(ctx)
	defer cancel()

	prompt := fmt.Sprintf(
		"Assess the weather and road hazards for a truck route from %s to %s on %s. "+
			"Reply with one short sentence naming any significant hazard, or an empty reply if none.",
		req.Origin, req.Destination, req.Date,
	)

	assessment, err := p.completion.Complete(callCtx, weatherSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("assess weather: %w", err)
	}
	assessment = strings.TrimSpace(assessment)

	if p.assessments != nil {
		if err := p.assessments.Put(ctx, key, assessment, p.assessmentTTL); err != nil {
			log.Printf("op=assessment.cache.put key=%q err=%v", key, err)
		}
	}

	return assessment, nil
}

const weatherSystemPrompt = "You are a dispatcher's assistant summarizing route conditions for truck drivers."

// callContext bounds a single external call without cutting the request
// deadline short when one is already set tighter.
func (p *RoutePlanner) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.callTimeout)
}
