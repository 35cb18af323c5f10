// Package domain contains the core data types for the Truck Spotter backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (planner, eld, repo, service, handler).
package domain

import "github.com/google/uuid"

// Waypoint is a geocoded point on a trip: the driver's current position, the
// pickup, or the dropoff. Waypoints are immutable once created.
type Waypoint struct {
	ID        uuid.UUID `json:"id,omitempty"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}
