// Package route contains the external route-estimation collaborators: the
// distance/duration estimator and the address geocoder, plus the seedable
// mock source both fall back to when the real API is unavailable.
package route

import (
	"context"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
)

// Leg is the estimated driving distance and duration between two waypoints.
type Leg struct {
	DistanceMiles   float64
	DurationMinutes float64
}

// Range bounds the mock distance drawn for a leg when the estimator is
// unavailable. Duration follows from distance (see MockSource.Leg).
type Range struct {
	MinMiles float64
	MaxMiles float64
}

// Estimator returns driving distance and duration between two waypoints.
// Implementations must be safe for concurrent use.
type Estimator interface {
	Estimate(ctx context.Context, origin, destination domain.Waypoint) (Leg, error)
}

// Geocoder resolves a free-text address to coordinates.
// Implementations must be safe for concurrent use.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lon float64, err error)
}
