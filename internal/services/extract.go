package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/ports"
)

// Returned (wrapped) when the completion provider produces something other
// than the expected JSON object.
var ErrMalformedCompletion = errors.New("malformed completion")

// ValidationError reports required order fields missing after extraction.
// It is fatal to the single work item, never to a batch of items.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("extracted order is missing required fields: %s", strings.Join(e.Missing, ", "))
}

const extractionSystemPrompt = "You extract freight order details from emails. " +
	"Reply with only a JSON object, no prose, matching exactly this shape: " +
	`{"pickup":{"location":"","date":"","time":""},` +
	`"delivery":{"location":"","date":"","time":""},` +
	`"contact":{"name":"","email":"","phone":""},` +
	`"cargo":{"description":"","weight_lbs":0}}`

type extractedStop struct {
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

type extractedOrder struct {
	Pickup   extractedStop `json:"pickup"`
	Delivery extractedStop `json:"delivery"`
	Contact  struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"contact"`
	Cargo struct {
		Description string  `json:"description"`
		WeightLbs   float64 `json:"weight_lbs"`
	} `json:"cargo"`
}

// ExtractOrder parses a raw order email into a structured Order using the
// completion provider, then validates the contract of the extraction use:
// contact name, email and phone must all be present.
func ExtractOrder(ctx context.Context, provider ports.CompletionProvider, emailText string) (*domain.Order, error) {
	if strings.TrimSpace(emailText) == "" {
		return nil, errors.New("extract order: email text must be non-empty")
	}

	completion, err := provider.Complete(ctx, extractionSystemPrompt, emailText)
	if err != nil {
		return nil, fmt.Errorf("extract order: complete: %w", err)
	}

	var extracted extractedOrder
	if err := json.Unmarshal([]byte(stripFences(completion)), &extracted); err != nil {
		return nil, fmt.Errorf("extract order: parse completion: %w: %v", ErrMalformedCompletion, err)
	}

	var missing []string
	if strings.TrimSpace(extracted.Contact.Name) == "" {
		missing = append(missing, "contact.name")
	}
	if strings.TrimSpace(extracted.Contact.Email) == "" {
		missing = append(missing, "contact.email")
	}
	if strings.TrimSpace(extracted.Contact.Phone) == "" {
		missing = append(missing, "contact.phone")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("extract order: %w", &ValidationError{Missing: missing})
	}

	return &domain.Order{
		Pickup: domain.Location{
			Address: domain.Address{Address: extracted.Pickup.Location},
			Date:    extracted.Pickup.Date,
			Time:    extracted.Pickup.Time,
		},
		Delivery: domain.Location{
			Address: domain.Address{Address: extracted.Delivery.Location},
			Date:    extracted.Delivery.Date,
			Time:    extracted.Delivery.Time,
		},
		Contact: domain.Contact{
			Name:  extracted.Contact.Name,
			Email: extracted.Contact.Email,
			Phone: extracted.Contact.Phone,
		},
		Cargo: domain.Cargo{
			Description: extracted.Cargo.Description,
			WeightLbs:   extracted.Cargo.WeightLbs,
		},
	}, nil
}

// stripFences removes a markdown code fence when the model wraps its JSON in
// one despite the instruction not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
