package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/ports"
)

const replySystemPrompt = "You draft short, professional dispatch confirmation emails for a freight company. " +
	"Reply with only the email body."

// DraftReply composes a confirmation email for an order using its
// best-ranked route. The plan must contain at least one ranked route.
func DraftReply(ctx context.Context, provider ports.CompletionProvider, plan *domain.OrderPlan) (string, error) {
	if plan == nil || len(plan.Routes) == 0 {
		return "", errors.New("draft reply: plan has no ranked routes")
	}

	best := plan.Routes[0]
	order := plan.Order

	var b strings.Builder
	fmt.Fprintf(&b, "Draft a confirmation reply to %s (%s).\n", order.Contact.Name, order.Contact.Email)
	fmt.Fprintf(&b, "Pickup: %s on %s at %s.\n", locationLabel(order.Pickup), order.Pickup.Date, order.Pickup.Time)
	fmt.Fprintf(&b, "Delivery: %s on %s at %s.\n", locationLabel(order.Delivery), order.Delivery.Date, order.Delivery.Time)
	if order.Cargo.Description != "" {
		fmt.Fprintf(&b, "Cargo: %s (%.0f lbs).\n", order.Cargo.Description, order.Cargo.WeightLbs)
	}
	fmt.Fprintf(&b, "Selected route: %.0f miles, %.1f hours, tolls $%.2f, fuel $%.2f.\n",
		best.Miles, best.DurationHours, best.TollCost, best.FuelCost)
	if len(best.AdverseConditions) > 0 {
		fmt.Fprintf(&b, "Conditions to mention: %s.\n", strings.Join(best.AdverseConditions, "; "))
	}

	reply, err := provider.Complete(ctx, replySystemPrompt, b.String())
	if err != nil {
		return "", fmt.Errorf("draft reply: complete: %w", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", errors.New("draft reply: provider returned an empty reply")
	}

	return reply, nil
}
