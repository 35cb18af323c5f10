// Package service contains the business logic for the Truck Spotter API.
// Services validate inputs, orchestrate the planner/partitioner, and drive
// repo calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
	"github.com/harsha80956/truck-spotter-backend/internal/planner"
	"github.com/harsha80956/truck-spotter-backend/internal/repo"
)

// ItineraryBuilder is the planning dependency of TripService. Defining the
// interface here (in the consumer package) lets tests inject a fixed planner
// without touching the estimator. *planner.Builder satisfies it.
type ItineraryBuilder interface {
	Build(ctx context.Context, current, pickup, dropoff domain.Waypoint, cycleHours float64, startTime time.Time) (planner.Itinerary, error)
}

// PlanInput carries everything needed to plan and persist a trip.
type PlanInput struct {
	CurrentLocation   domain.Waypoint
	PickupLocation    domain.Waypoint
	DropoffLocation   domain.Waypoint
	CurrentCycleHours float64
	StartTime         time.Time // zero means now
}

// TripService implements business logic for Trip operations.
type TripService struct {
	builder ItineraryBuilder
	trips   repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided planner and repo.
func NewTripService(builder ItineraryBuilder, trips repo.TripRepo) *TripService {
	return &TripService{builder: builder, trips: trips}
}

// Plan builds an itinerary for the input waypoints and persists the trip with
// its segment chain. Returns domain.ErrValidation for malformed input.
func (s *TripService) Plan(ctx context.Context, in PlanInput) (domain.Trip, error) {
	itinerary, err := s.builder.Build(ctx, in.CurrentLocation, in.PickupLocation, in.DropoffLocation, in.CurrentCycleHours, in.StartTime)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Plan: %w", err)
	}

	trip := domain.Trip{
		CurrentLocation:      in.CurrentLocation,
		PickupLocation:       in.PickupLocation,
		DropoffLocation:      in.DropoffLocation,
		CurrentCycleHours:    in.CurrentCycleHours,
		TotalDistanceMiles:   itinerary.TotalDistanceMiles,
		TotalDurationMinutes: itinerary.TotalDrivingMinutes,
		StartTime:            itinerary.StartTime,
		EndTime:              itinerary.EndTime,
		Segments:             itinerary.Segments,
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Plan: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip with its segments.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListPaged returns one page of trip summaries and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.TripSummary{}
	}
	return trips, total, nil
}

// Delete removes a trip by ID; its segments and logs cascade with it.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}
