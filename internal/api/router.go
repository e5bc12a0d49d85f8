package api

import (
	"net/http"

	"truck-route-service/internal/api/handlers"
	"truck-route-service/internal/ports"
	"truck-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.RoutePlanner, completion ports.CompletionProvider) http.Handler {
	mux := http.NewServeMux()

	orderHandler := &handlers.OrderHandler{
		Planner:    planner,
		Completion: completion,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/orders/plan", orderHandler.Plan)
	mux.HandleFunc("/orders/extract", orderHandler.Extract)
	mux.HandleFunc("/orders/reply", orderHandler.Reply)

	return loggingMiddleware(mux)
}
