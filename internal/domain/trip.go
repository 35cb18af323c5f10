package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: three waypoints, the driver's accumulated
// cycle hours, and the planned itinerary. Segments are ordered by start time.
type Trip struct {
	ID                   uuid.UUID `json:"id"`
	CurrentLocation      Waypoint  `json:"current_location"`
	PickupLocation       Waypoint  `json:"pickup_location"`
	DropoffLocation      Waypoint  `json:"dropoff_location"`
	CurrentCycleHours    float64   `json:"current_cycle_hours"`
	TotalDistanceMiles   float64   `json:"total_distance"`
	TotalDurationMinutes float64   `json:"total_duration"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	CreatedAt            time.Time `json:"created_at"`
	Segments             []Segment `json:"segments"`
}

// TripSummary is the flattened list-view projection of a trip: addresses only,
// no nested waypoints or segments. Used by the paged trip listing.
type TripSummary struct {
	ID                   uuid.UUID `json:"id"`
	CurrentAddress       string    `json:"current_location_address"`
	PickupAddress        string    `json:"pickup_location_address"`
	DropoffAddress       string    `json:"dropoff_location_address"`
	TotalDistanceMiles   float64   `json:"total_distance"`
	TotalDurationMinutes float64   `json:"total_duration"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	CreatedAt            time.Time `json:"created_at"`
	SegmentCount         int       `json:"segment_count"`
}
