// Package handler implements the HTTP handlers for the Truck Spotter API.
// All handlers are methods on Server; methods are split into domain-specific
// files (health.go, trip.go, log.go, location.go) but share the same Server
// struct so they can access its dependencies. Requests use camelCase JSON,
// responses snake_case — matching the clients this API replaced.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
	"github.com/harsha80956/truck-spotter-backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Plan(ctx context.Context, in service.PlanInput) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LogServicer defines the business operations the log handlers depend on.
type LogServicer interface {
	Regenerate(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error)
	ListPaged(ctx context.Context, tripID *uuid.UUID, p domain.PaginationParams) ([]domain.DailyLog, int64, error)
}

// LocationServicer defines the business operations the location handlers depend on.
type LocationServicer interface {
	Geocode(ctx context.Context, address string) (domain.Waypoint, error)
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips     TripServicer
	logs      LogServicer
	locations LocationServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, logs LogServicer, locations LocationServicer) *Server {
	return &Server{trips: trips, logs: logs, locations: locations}
}

// Routes returns the API route tree. Cross-cutting middleware (request ID,
// logging, CORS, body limits) is attached by the caller in main.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Post("/plan", s.PlanTrip)
			r.Get("/", s.ListTrips)
			r.Get("/{id}", s.GetTrip)
			r.Delete("/{id}", s.DeleteTrip)
		})
		r.Route("/logs", func(r chi.Router) {
			r.Post("/generate", s.GenerateLogs)
			r.Get("/", s.ListLogs)
		})
		r.Post("/locations/geocode", s.GeocodeLocation)
	})

	return r
}
