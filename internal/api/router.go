package api

import (
	"net/http"

	"carrier-dispatch-service/internal/api/handlers"
	"carrier-dispatch-service/internal/ports"
)

// Deps carries the ports the API serves from.
type Deps struct {
	Store     ports.RouteLegStore
	Events    ports.EventPublisher
	Loads     ports.LoadRepository
	Drivers   ports.DriverRepository
	Locations ports.LocationRepository
	Drafts    ports.DraftSessionStore
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	assignmentHandler := &handlers.AssignmentHandler{
		Store:     deps.Store,
		Events:    deps.Events,
		Loads:     deps.Loads,
		Locations: deps.Locations,
		Drafts:    deps.Drafts,
	}
	locationHandler := &handlers.LocationHandler{
		Loads:     deps.Loads,
		Locations: deps.Locations,
	}
	driverHandler := &handlers.DriverHandler{Repo: deps.Drivers}
	payHandler := &handlers.PayHandler{}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /drivers", driverHandler.List)
	mux.HandleFunc("GET /loads/{id}/locations", locationHandler.Candidates)
	mux.HandleFunc("POST /loads/{id}/assign-leg", assignmentHandler.Create)
	mux.HandleFunc("GET /loads/{id}/assign-leg/draft", assignmentHandler.NewLegDraft)
	mux.HandleFunc("PUT /route-legs/{id}", assignmentHandler.Update)
	mux.HandleFunc("GET /route-legs/{id}/draft", assignmentHandler.LegDraft)
	mux.HandleFunc("POST /pay-estimates", payHandler.Estimate)

	return requestIDMiddleware(loggingMiddleware(mux))
}
