package domain

import (
	"time"

	"github.com/google/uuid"
)

// SegmentType tags one leg of a planned itinerary.
type SegmentType string

const (
	SegmentDrive  SegmentType = "drive"
	SegmentLoad   SegmentType = "load"
	SegmentUnload SegmentType = "unload"
	SegmentBreak  SegmentType = "break"
	SegmentRest   SegmentType = "rest"
)

// Segment is one activity interval of a trip's itinerary. Segments are
// produced once by the itinerary builder and are read-only afterward.
//
// Invariant: a trip's segments form a continuous chain — they are ordered by
// StartTime and each segment's StartTime equals the previous segment's
// EndTime, with no overlap or gap.
type Segment struct {
	ID              uuid.UUID   `json:"id,omitempty"`
	TripID          uuid.UUID   `json:"trip_id,omitempty"`
	Type            SegmentType `json:"segment_type"`
	StartLocation   Waypoint    `json:"start_location"`
	EndLocation     Waypoint    `json:"end_location"`
	DistanceMiles   float64     `json:"distance"`
	DurationMinutes float64     `json:"duration"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         time.Time   `json:"end_time"`
}

// Duration returns the segment's extent as a time.Duration.
func (s Segment) Duration() time.Duration {
	return time.Duration(s.DurationMinutes * float64(time.Minute))
}
