package planner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
	"github.com/harsha80956/truck-spotter-backend/internal/planner"
	"github.com/harsha80956/truck-spotter-backend/internal/route"
)

// stubEstimator is a test double for route.Estimator.
type stubEstimator struct {
	estimate func(ctx context.Context, origin, destination domain.Waypoint) (route.Leg, error)
}

func (s *stubEstimator) Estimate(ctx context.Context, origin, destination domain.Waypoint) (route.Leg, error) {
	return s.estimate(ctx, origin, destination)
}

var _ route.Estimator = (*stubEstimator)(nil)

// ---- helpers ---------------------------------------------------------------

var (
	chicago      = domain.Waypoint{Address: "Chicago, IL", Latitude: 41.8781, Longitude: -87.6298}
	indianapolis = domain.Waypoint{Address: "Indianapolis, IN", Latitude: 39.7684, Longitude: -86.1581}
	columbus     = domain.Waypoint{Address: "Columbus, OH", Latitude: 39.9612, Longitude: -82.9988}
)

// fixedEstimator returns approachMinutes for the first leg requested and
// linehaulMinutes for every later one, with distance at 50 mph.
func fixedEstimator(approachMinutes, linehaulMinutes float64) *stubEstimator {
	calls := 0
	return &stubEstimator{
		estimate: func(_ context.Context, _, _ domain.Waypoint) (route.Leg, error) {
			calls++
			minutes := linehaulMinutes
			if calls == 1 {
				minutes = approachMinutes
			}
			return route.Leg{DistanceMiles: minutes / 1.2, DurationMinutes: minutes}, nil
		},
	}
}

func newBuilder(est route.Estimator) *planner.Builder {
	return planner.NewBuilder(est, route.NewSeededMockSource(1))
}

func segmentTypes(segs []domain.Segment) []domain.SegmentType {
	types := make([]domain.SegmentType, len(segs))
	for i, s := range segs {
		types[i] = s.Type
	}
	return types
}

var startAt = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

// ---- chain shape -----------------------------------------------------------

func TestBuild_ShortTrip_NoBreakNoRest(t *testing.T) {
	// 2h + 5h driving, fresh driver: 7h driving + 2h service = 9h <= 14h.
	b := newBuilder(fixedEstimator(120, 300))

	it, err := b.Build(context.Background(), chicago, indianapolis, columbus, 0, startAt)

	require.NoError(t, err)
	assert.Equal(t, []domain.SegmentType{
		domain.SegmentDrive, domain.SegmentLoad, domain.SegmentDrive, domain.SegmentUnload,
	}, segmentTypes(it.Segments))
	assert.Equal(t, startAt, it.StartTime)
	assert.Equal(t, startAt.Add(9*time.Hour), it.EndTime)
	assert.InDelta(t, 420, it.TotalDrivingMinutes, 1e-9)
}

func TestBuild_ChainIsContinuous(t *testing.T) {
	b := newBuilder(fixedEstimator(240, 300))

	it, err := b.Build(context.Background(), chicago, indianapolis, columbus, 3, startAt)

	require.NoError(t, err)
	require.NotEmpty(t, it.Segments)
	assert.Equal(t, it.StartTime, it.Segments[0].StartTime)
	for i := 1; i < len(it.Segments); i++ {
		assert.Equal(t, it.Segments[i-1].EndTime, it.Segments[i].StartTime,
			"segment %d must start when segment %d ends", i, i-1)
	}
	assert.Equal(t, it.Segments[len(it.Segments)-1].EndTime, it.EndTime)
}

func TestBuild_NineDrivingHours_OneBreak(t *testing.T) {
	// 4h + 5h driving = 9h total: the 8-hour rule fires exactly once.
	b := newBuilder(fixedEstimator(240, 300))

	it, err := b.Build(context.Background(), chicago, indianapolis, columbus, 0, startAt)

	require.NoError(t, err)
	assert.Equal(t, []domain.SegmentType{
		domain.SegmentDrive, domain.SegmentLoad, domain.SegmentBreak, domain.SegmentDrive, domain.SegmentUnload,
	}, segmentTypes(it.Segments))

	// 9h driving + 1h load + 0.5h break + 1h unload = 11.5h.
	assert.Equal(t, startAt.Add(11*time.Hour+30*time.Minute), it.EndTime)
}

func TestBuild_SevenDrivingHours_NoBreak(t *testing.T) {
	b := newBuilder(fixedEstimator(120, 300))

	it, err := b.Build(context.Background(), chicago, indianapolis, columbus, 0, startAt)

	require.NoError(t, err)
	assert.NotContains(t, segmentTypes(it.Segments), domain.SegmentBreak)
}

func TestBuild_ExceededDutyWindow_RestSegment(t *testing.T) {
	// 9h driving + 0.5h break + 2h service = 11.5h on duty; with 5.5 cycle
	// hours the remaining window is 8.5h, so a 10-hour rest is inserted.
	b := newBuilder(fixedEstimator(240, 300))

	it, err := b.Build(context.Background(), chicago, indianapolis, columbus, 5.5, startAt)

	require.NoError(t, err)
	assert.Equal(t, []domain.SegmentType{
		domain.SegmentDrive, domain.SegmentLoad, domain.SegmentBreak, domain.SegmentRest, domain.SegmentDrive, domain.SegmentUnload,
	}, segmentTypes(it.Segments))
	assert.Equal(t, startAt.Add(21*time.Hour+30*time.Minute), it.EndTime)
}

func TestBuild_WithinDutyWindow_NoRest(t *testing.T) {
	// Fresh driver, 9h total trip time <= 14h window: no rest hours added.
	b := newBuilder(fixedEstimator(120, 300))

	it, err := b.Build(context.Background(), chicago, indianapolis, columbus, 0, startAt)

	require.NoError(t, err)
	assert.NotContains(t, segmentTypes(it.Segments), domain.SegmentRest)
	assert.Equal(t, startAt.Add(9*time.Hour), it.EndTime)
}

// ---- estimator fallback ----------------------------------------------------

func TestBuild_EstimatorFailure_FallsBackToMock(t *testing.T) {
	failing := &stubEstimator{
		estimate: func(_ context.Context, _, _ domain.Waypoint) (route.Leg, error) {
			return route.Leg{}, errors.New("maps api unreachable")
		},
	}
	b := newBuilder(failing)

	it, err := b.Build(context.Background(), chicago, indianapolis, columbus, 0, startAt)

	// Estimator failures must never fail the build.
	require.NoError(t, err)

	drives := []domain.Segment{}
	for _, s := range it.Segments {
		if s.Type == domain.SegmentDrive {
			drives = append(drives, s)
		}
	}
	require.Len(t, drives, 2)
	assert.GreaterOrEqual(t, drives[0].DistanceMiles, 50.0)
	assert.Less(t, drives[0].DistanceMiles, 200.0)
	assert.GreaterOrEqual(t, drives[1].DistanceMiles, 300.0)
	assert.Less(t, drives[1].DistanceMiles, 800.0)
}

func TestBuild_NilEstimator_MockOnly(t *testing.T) {
	b := newBuilder(nil)

	it, err := b.Build(context.Background(), chicago, indianapolis, columbus, 0, startAt)

	require.NoError(t, err)
	assert.NotEmpty(t, it.Segments)
	assert.Greater(t, it.TotalDistanceMiles, 0.0)
}

func TestBuild_Deterministic(t *testing.T) {
	a, err := newBuilder(fixedEstimator(240, 300)).Build(context.Background(), chicago, indianapolis, columbus, 2, startAt)
	require.NoError(t, err)
	b, err := newBuilder(fixedEstimator(240, 300)).Build(context.Background(), chicago, indianapolis, columbus, 2, startAt)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

// ---- validation ------------------------------------------------------------

func TestBuild_MissingAddress(t *testing.T) {
	b := newBuilder(fixedEstimator(120, 300))

	bad := indianapolis
	bad.Address = "  "
	_, err := b.Build(context.Background(), chicago, bad, columbus, 0, startAt)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "pickup location")
}

func TestBuild_LatitudeOutOfRange(t *testing.T) {
	b := newBuilder(fixedEstimator(120, 300))

	bad := columbus
	bad.Latitude = 91
	_, err := b.Build(context.Background(), chicago, indianapolis, bad, 0, startAt)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "dropoff location")
}

func TestBuild_CycleHoursOutOfRange(t *testing.T) {
	b := newBuilder(fixedEstimator(120, 300))

	_, err := b.Build(context.Background(), chicago, indianapolis, columbus, 70.5, startAt)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuild_ZeroStartTime_DefaultsToNow(t *testing.T) {
	b := newBuilder(fixedEstimator(120, 300))

	before := time.Now().UTC()
	it, err := b.Build(context.Background(), chicago, indianapolis, columbus, 0, time.Time{})
	after := time.Now().UTC()

	require.NoError(t, err)
	assert.False(t, it.StartTime.Before(before))
	assert.False(t, it.StartTime.After(after))
}
