package dto

import "truck-route-service/internal/domain"

type RouteResponse struct {
	Rank              int      `json:"rank"`
	Score             float64  `json:"score"`
	Miles             float64  `json:"miles"`
	DurationHours     float64  `json:"duration_hours"`
	TollCost          float64  `json:"toll_cost"`
	FuelCost          float64  `json:"fuel_cost"`
	AdverseConditions []string `json:"adverse_conditions"`
}

type PlanResponse struct {
	Order  OrderResponse   `json:"order"`
	Routes []RouteResponse `json:"routes"`
}

func PlanResponseFromDomain(plan *domain.OrderPlan) PlanResponse {
	routes := make([]RouteResponse, 0, len(plan.Routes))
	for _, r := range plan.Routes {
		conditions := r.AdverseConditions
		if conditions == nil {
			conditions = []string{}
		}
		routes = append(routes, RouteResponse{
			Rank:              r.Rank,
			Score:             r.Score,
			Miles:             r.Miles,
			DurationHours:     r.DurationHours,
			TollCost:          r.TollCost,
			FuelCost:          r.FuelCost,
			AdverseConditions: conditions,
		})
	}

	return PlanResponse{
		Order:  OrderResponseFromDomain(plan.Order),
		Routes: routes,
	}
}

type ExtractRequest struct {
	Email string `json:"email"`
}

type ExtractResponse struct {
	Order OrderResponse `json:"order"`
}

// ReplyRequest carries an order plus its planned routes back in, typically
// the body of a previous plan response.
type ReplyRequest struct {
	Order  OrderResponse   `json:"order"`
	Routes []RouteResponse `json:"routes"`
}

// ToDomain rebuilds the OrderPlan from an echoed plan response.
func (r ReplyRequest) ToDomain() *domain.OrderPlan {
	routes := make(domain.RankedRouteSet, 0, len(r.Routes))
	for _, route := range r.Routes {
		routes = append(routes, domain.RouteCandidate{
			Rank:              route.Rank,
			Score:             route.Score,
			Miles:             route.Miles,
			DurationHours:     route.DurationHours,
			TollCost:          route.TollCost,
			FuelCost:          route.FuelCost,
			AdverseConditions: route.AdverseConditions,
		})
	}

	return &domain.OrderPlan{
		Order:  r.Order.ToDomain(),
		Routes: routes,
	}
}

type ReplyResponse struct {
	Reply string `json:"reply"`
}
