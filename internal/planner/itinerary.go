// Package planner builds a regulation-aware itinerary for a three-waypoint
// trip: drive to the pickup, load, take any required breaks and rest, drive
// to the dropoff, unload. The emitted segments form a continuous chain —
// each segment starts exactly when the previous one ends — so the chain
// fully tiles the trip's [start, end] window.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
	"github.com/harsha80956/truck-spotter-backend/internal/hos"
	"github.com/harsha80956/truck-spotter-backend/internal/route"
)

// Fallback distance ranges per leg when the estimator is unavailable.
// The approach leg (current position to pickup) is assumed short-haul, the
// linehaul leg (pickup to dropoff) long-haul.
var (
	approachLegRange = route.Range{MinMiles: 50, MaxMiles: 200}
	linehaulLegRange = route.Range{MinMiles: 300, MaxMiles: 800}
)

// Itinerary is the planner's output: the segment chain plus trip-level totals.
// TotalDrivingMinutes counts drive segments only; EndTime accounts for every
// segment, including breaks, rest, loading, and unloading.
type Itinerary struct {
	Segments            []domain.Segment
	StartTime           time.Time
	EndTime             time.Time
	TotalDistanceMiles  float64
	TotalDrivingMinutes float64
}

// Builder plans itineraries. When estimator is nil the builder runs entirely
// on the mock source; when an estimator is set, per-leg failures degrade to
// the mock source and never fail the build.
type Builder struct {
	estimator route.Estimator
	mock      *route.MockSource
}

// NewBuilder constructs a Builder. estimator may be nil (mock-only mode);
// mock must not be nil — it is the fallback of last resort.
func NewBuilder(estimator route.Estimator, mock *route.MockSource) *Builder {
	return &Builder{estimator: estimator, mock: mock}
}

// Build plans the itinerary for a trip starting at startTime (zero value
// means now). Returns domain.ErrValidation when a waypoint is malformed or
// cycleHours is outside [0, 70]. Estimator failures are recovered via the
// mock source and never propagated.
func (b *Builder) Build(ctx context.Context, current, pickup, dropoff domain.Waypoint, cycleHours float64, startTime time.Time) (Itinerary, error) {
	if err := validateWaypoint("current location", current); err != nil {
		return Itinerary{}, err
	}
	if err := validateWaypoint("pickup location", pickup); err != nil {
		return Itinerary{}, err
	}
	if err := validateWaypoint("dropoff location", dropoff); err != nil {
		return Itinerary{}, err
	}
	if cycleHours < 0 || cycleHours > hos.MaxCycleHours {
		return Itinerary{}, fmt.Errorf("%w: current cycle hours must be between 0 and %v", domain.ErrValidation, hos.MaxCycleHours)
	}

	start := startTime
	if start.IsZero() {
		start = time.Now()
	}
	start = start.UTC()

	approach := b.estimateLeg(ctx, current, pickup, approachLegRange)
	linehaul := b.estimateLeg(ctx, pickup, dropoff, linehaulLegRange)

	drivingMinutes := approach.DurationMinutes + linehaul.DurationMinutes
	breaks := hos.BreaksRequired(drivingMinutes / 60)

	onDutyMinutes := drivingMinutes + float64(breaks)*hos.BreakMinutes + hos.LoadMinutes + hos.UnloadMinutes
	needsRest := hos.NeedsExtendedRest(onDutyMinutes/60, cycleHours)

	cursor := start
	segments := make([]domain.Segment, 0, 5+breaks)
	add := func(t domain.SegmentType, from, to domain.Waypoint, miles, minutes float64) {
		end := cursor.Add(time.Duration(minutes * float64(time.Minute)))
		segments = append(segments, domain.Segment{
			Type:            t,
			StartLocation:   from,
			EndLocation:     to,
			DistanceMiles:   miles,
			DurationMinutes: minutes,
			StartTime:       cursor,
			EndTime:         end,
		})
		cursor = end
	}

	add(domain.SegmentDrive, current, pickup, approach.DistanceMiles, approach.DurationMinutes)
	add(domain.SegmentLoad, pickup, pickup, 0, hos.LoadMinutes)
	for i := 0; i < breaks; i++ {
		add(domain.SegmentBreak, pickup, pickup, 0, hos.BreakMinutes)
	}
	if needsRest {
		add(domain.SegmentRest, pickup, pickup, 0, hos.ExtendedRestHours*60)
	}
	add(domain.SegmentDrive, pickup, dropoff, linehaul.DistanceMiles, linehaul.DurationMinutes)
	add(domain.SegmentUnload, dropoff, dropoff, 0, hos.UnloadMinutes)

	return Itinerary{
		Segments:            segments,
		StartTime:           start,
		EndTime:             cursor,
		TotalDistanceMiles:  approach.DistanceMiles + linehaul.DistanceMiles,
		TotalDrivingMinutes: drivingMinutes,
	}, nil
}

// estimateLeg queries the estimator and degrades to a mock leg on failure.
func (b *Builder) estimateLeg(ctx context.Context, origin, destination domain.Waypoint, fallback route.Range) route.Leg {
	if b.estimator != nil {
		leg, err := b.estimator.Estimate(ctx, origin, destination)
		if err == nil {
			return leg
		}
		slog.WarnContext(ctx, "route estimate failed, falling back to mock leg",
			"origin", origin.Address,
			"destination", destination.Address,
			"error", err,
		)
	}
	return b.mock.Leg(fallback)
}

// validateWaypoint checks that a waypoint has an address and in-range
// coordinates. field names the waypoint in the returned validation error.
func validateWaypoint(field string, w domain.Waypoint) error {
	if strings.TrimSpace(w.Address) == "" {
		return fmt.Errorf("%w: %s: address is required", domain.ErrValidation, field)
	}
	if math.IsNaN(w.Latitude) || w.Latitude < -90 || w.Latitude > 90 {
		return fmt.Errorf("%w: %s: latitude must be between -90 and 90", domain.ErrValidation, field)
	}
	if math.IsNaN(w.Longitude) || w.Longitude < -180 || w.Longitude > 180 {
		return fmt.Errorf("%w: %s: longitude must be between -180 and 180", domain.ErrValidation, field)
	}
	return nil
}
