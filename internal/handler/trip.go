package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
	"github.com/harsha80956/truck-spotter-backend/internal/service"
)

// planTripRequest is the POST /api/trips/plan body. Field names are camelCase
// to match the planning clients.
type planTripRequest struct {
	CurrentLocation   waypointRequest `json:"currentLocation"`
	PickupLocation    waypointRequest `json:"pickupLocation"`
	DropoffLocation   waypointRequest `json:"dropoffLocation"`
	CurrentCycleHours float64         `json:"currentCycleHours"`
	StartDateTime     *time.Time      `json:"startDateTime,omitempty"`
}

type waypointRequest struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (w waypointRequest) toDomain() domain.Waypoint {
	return domain.Waypoint{Address: w.Address, Latitude: w.Latitude, Longitude: w.Longitude}
}

// pagination is the envelope's paging block, shared by all list endpoints.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// PlanTrip handles POST /api/trips/plan.
func (s *Server) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var req planTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	in := service.PlanInput{
		CurrentLocation:   req.CurrentLocation.toDomain(),
		PickupLocation:    req.PickupLocation.toDomain(),
		DropoffLocation:   req.DropoffLocation.toDomain(),
		CurrentCycleHours: req.CurrentCycleHours,
	}
	if req.StartDateTime != nil {
		in.StartTime = *req.StartDateTime
	}

	trip, err := s.trips.Plan(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, trip)
}

// ListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=10, max=50).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := paginationFromQuery(r)
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Data       []domain.TripSummary `json:"data"`
		Pagination pagination           `json:"pagination"`
	}{
		Data:       trips,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, r, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /api/trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, r, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
