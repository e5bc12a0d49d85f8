package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"truck-route-service/internal/api/dto"
	"truck-route-service/internal/ports"
	"truck-route-service/internal/services"
)

// OrderHandler exposes the order planning, extraction, and reply endpoints.
type OrderHandler struct {
	Planner    *services.RoutePlanner
	Completion ports.CompletionProvider
}

// Plan resolves, enriches, scores and ranks candidate routes for an order.
func (h *OrderHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Pickup.Location) == "" || strings.TrimSpace(req.Delivery.Location) == "" {
		writeError(w, r, http.StatusBadRequest, "pickup and delivery locations are required")
		return
	}

	plan, err := h.Planner.PlanOrder(r.Context(), req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrAddressNotFound):
			writeError(w, r, http.StatusUnprocessableEntity, "address could not be resolved")
		case errors.Is(err, services.ErrNoRoutes):
			writeError(w, r, http.StatusBadGateway, "routing provider returned no candidate routes")
		default:
			log.Printf("plan order failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanResponseFromDomain(plan))
}

// Extract parses a raw order email into a structured order.
func (h *OrderHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ExtractRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		writeError(w, r, http.StatusBadRequest, "email is required")
		return
	}

	order, err := services.ExtractOrder(r.Context(), h.Completion, req.Email)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, r, http.StatusUnprocessableEntity, ve.Error())
		case errors.Is(err, services.ErrMalformedCompletion):
			log.Printf("extract order failed: %v", err)
			writeError(w, r, http.StatusBadGateway, "extraction service returned malformed output")
		default:
			log.Printf("extract order failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ExtractResponse{Order: dto.OrderResponseFromDomain(*order)})
}

// Reply drafts a confirmation email for a planned order.
func (h *OrderHandler) Reply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ReplyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if len(req.Routes) == 0 {
		writeError(w, r, http.StatusBadRequest, "routes are required")
		return
	}

	reply, err := services.DraftReply(r.Context(), h.Completion, req.ToDomain())
	if err != nil {
		log.Printf("draft reply failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ReplyResponse{Reply: reply})
}

// decodeBody decodes a single JSON object into v, rejecting unknown fields
// and trailing content. It writes the error response itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}
