package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
	"github.com/harsha80956/truck-spotter-backend/internal/eld"
	"github.com/harsha80956/truck-spotter-backend/internal/repo"
	"github.com/harsha80956/truck-spotter-backend/internal/service"
)

// mockLogRepo is a hand-written test double for repo.LogRepo.
type mockLogRepo struct {
	replace   func(ctx context.Context, tripID uuid.UUID, logs []domain.DailyLog) ([]domain.DailyLog, error)
	listPaged func(ctx context.Context, tripID *uuid.UUID, p domain.PaginationParams) ([]domain.DailyLog, int64, error)
}

func (m *mockLogRepo) Replace(ctx context.Context, tripID uuid.UUID, logs []domain.DailyLog) ([]domain.DailyLog, error) {
	return m.replace(ctx, tripID, logs)
}
func (m *mockLogRepo) ListPaged(ctx context.Context, tripID *uuid.UUID, p domain.PaginationParams) ([]domain.DailyLog, int64, error) {
	return m.listPaged(ctx, tripID, p)
}

var _ repo.LogRepo = (*mockLogRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func testIdentity() eld.Identity {
	return eld.Identity{
		DriverName:    "John Driver",
		CarrierName:   "Acme Freight",
		TruckNumber:   "TRK-100",
		TrailerNumber: "TRL-200",
		OdometerBase:  100000,
	}
}

// tripWithSegments builds a stored trip whose chain spans two calendar days.
func tripWithSegments() domain.Trip {
	start := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	drive := domain.Segment{
		Type:            domain.SegmentDrive,
		StartLocation:   domain.Waypoint{Address: "Chicago, IL"},
		EndLocation:     domain.Waypoint{Address: "Des Moines, IA"},
		DistanceMiles:   300,
		DurationMinutes: 6 * 60,
		StartTime:       start,
		EndTime:         start.Add(6 * time.Hour),
	}
	return domain.Trip{
		ID:        uuid.New(),
		StartTime: drive.StartTime,
		EndTime:   drive.EndTime,
		Segments:  []domain.Segment{drive},
	}
}

// ---- Regenerate tests ------------------------------------------------------

func TestLogService_Regenerate(t *testing.T) {
	trip := tripWithSegments()

	tr := &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, trip.ID, id)
			return trip, nil
		},
	}

	var replaced []domain.DailyLog
	lr := &mockLogRepo{
		replace: func(_ context.Context, tripID uuid.UUID, logs []domain.DailyLog) ([]domain.DailyLog, error) {
			assert.Equal(t, trip.ID, tripID)
			replaced = logs
			return logs, nil
		},
	}
	svc := service.NewLogService(tr, lr, testIdentity())

	got, err := svc.Regenerate(context.Background(), trip.ID)

	require.NoError(t, err)
	// 20:00–02:00 spans two calendar days, one log sheet each.
	require.Len(t, got, 2)
	assert.Equal(t, got, replaced, "the persisted set is what the partitioner produced")
	assert.Equal(t, "John Driver", got[0].DriverName)
	assert.Equal(t, "Acme Freight", got[0].CarrierName)
}

func TestLogService_Regenerate_Deterministic(t *testing.T) {
	trip := tripWithSegments()

	tr := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return trip, nil },
	}
	lr := &mockLogRepo{
		replace: func(_ context.Context, _ uuid.UUID, logs []domain.DailyLog) ([]domain.DailyLog, error) {
			return logs, nil
		},
	}
	svc := service.NewLogService(tr, lr, testIdentity())

	first, err := svc.Regenerate(context.Background(), trip.ID)
	require.NoError(t, err)
	second, err := svc.Regenerate(context.Background(), trip.ID)
	require.NoError(t, err)

	// Regenerating an unchanged trip must yield an identical log set.
	assert.Equal(t, first, second)
}

func TestLogService_Regenerate_TripNotFound(t *testing.T) {
	tr := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewLogService(tr, &mockLogRepo{}, testIdentity())

	_, err := svc.Regenerate(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogService_Regenerate_NoSegments(t *testing.T) {
	trip := tripWithSegments()
	trip.Segments = nil

	tr := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return trip, nil },
	}
	svc := service.NewLogService(tr, &mockLogRepo{}, testIdentity())

	_, err := svc.Regenerate(context.Background(), trip.ID)

	assert.ErrorIs(t, err, domain.ErrNoSegments)
}

func TestLogService_Regenerate_RepoError(t *testing.T) {
	trip := tripWithSegments()
	repoErr := errors.New("db exploded")

	tr := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return trip, nil },
	}
	lr := &mockLogRepo{
		replace: func(_ context.Context, _ uuid.UUID, _ []domain.DailyLog) ([]domain.DailyLog, error) {
			return nil, repoErr
		},
	}
	svc := service.NewLogService(tr, lr, testIdentity())

	_, err := svc.Regenerate(context.Background(), trip.ID)

	assert.ErrorIs(t, err, repoErr)
}

// ---- ListPaged tests -------------------------------------------------------

func TestLogService_ListPaged_FilterPassedThrough(t *testing.T) {
	tripID := uuid.New()
	lr := &mockLogRepo{
		listPaged: func(_ context.Context, got *uuid.UUID, _ domain.PaginationParams) ([]domain.DailyLog, int64, error) {
			require.NotNil(t, got)
			assert.Equal(t, tripID, *got)
			return []domain.DailyLog{{TripID: tripID}}, 1, nil
		},
	}
	svc := service.NewLogService(&mockTripRepo{}, lr, testIdentity())

	got, total, err := svc.ListPaged(context.Background(), &tripID, domain.PaginationParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), total)
}

func TestLogService_ListPaged_Empty(t *testing.T) {
	lr := &mockLogRepo{
		listPaged: func(_ context.Context, tripID *uuid.UUID, _ domain.PaginationParams) ([]domain.DailyLog, int64, error) {
			assert.Nil(t, tripID)
			return nil, 0, nil
		},
	}
	svc := service.NewLogService(&mockTripRepo{}, lr, testIdentity())

	got, total, err := svc.ListPaged(context.Background(), nil, domain.PaginationParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}
