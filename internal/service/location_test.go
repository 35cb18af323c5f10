package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
	"github.com/harsha80956/truck-spotter-backend/internal/repo"
	"github.com/harsha80956/truck-spotter-backend/internal/route"
	"github.com/harsha80956/truck-spotter-backend/internal/service"
)

// mockLocationRepo is a hand-written test double for repo.LocationRepo.
type mockLocationRepo struct {
	create  func(ctx context.Context, w domain.Waypoint) (domain.Waypoint, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Waypoint, error)
}

func (m *mockLocationRepo) Create(ctx context.Context, w domain.Waypoint) (domain.Waypoint, error) {
	return m.create(ctx, w)
}
func (m *mockLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Waypoint, error) {
	return m.getByID(ctx, id)
}

var _ repo.LocationRepo = (*mockLocationRepo)(nil)

// mockGeocoder stubs route.Geocoder.
type mockGeocoder struct {
	geocode func(ctx context.Context, address string) (float64, float64, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	return m.geocode(ctx, address)
}

var _ route.Geocoder = (*mockGeocoder)(nil)

func echoLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{
		create: func(_ context.Context, w domain.Waypoint) (domain.Waypoint, error) {
			w.ID = uuid.New()
			return w, nil
		},
	}
}

func TestLocationService_Geocode_RealGeocoder(t *testing.T) {
	g := &mockGeocoder{
		geocode: func(_ context.Context, address string) (float64, float64, error) {
			assert.Equal(t, "Chicago, IL", address)
			return 41.88, -87.63, nil
		},
	}
	svc := service.NewLocationService(g, route.NewSeededMockSource(1), echoLocationRepo())

	got, err := svc.Geocode(context.Background(), "  Chicago, IL  ")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Chicago, IL", got.Address)
	assert.InDelta(t, 41.88, got.Latitude, 1e-9)
	assert.InDelta(t, -87.63, got.Longitude, 1e-9)
}

func TestLocationService_Geocode_FallsBackOnGeocoderError(t *testing.T) {
	g := &mockGeocoder{
		geocode: func(_ context.Context, _ string) (float64, float64, error) {
			return 0, 0, errors.New("quota exceeded")
		},
	}
	svc := service.NewLocationService(g, route.NewSeededMockSource(1), echoLocationRepo())

	got, err := svc.Geocode(context.Background(), "Chicago, IL")

	// A geocoder outage degrades to mock coordinates rather than failing.
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Latitude, 30.0)
	assert.LessOrEqual(t, got.Latitude, 45.0)
	assert.GreaterOrEqual(t, got.Longitude, -120.0)
	assert.LessOrEqual(t, got.Longitude, -70.0)
}

func TestLocationService_Geocode_MockOnly(t *testing.T) {
	svc := service.NewLocationService(nil, route.NewSeededMockSource(1), echoLocationRepo())

	got, err := svc.Geocode(context.Background(), "Chicago, IL")

	require.NoError(t, err)
	assert.Equal(t, "Chicago, IL", got.Address)
	assert.NotZero(t, got.Latitude)
	assert.NotZero(t, got.Longitude)
}

func TestLocationService_Geocode_BlankAddress(t *testing.T) {
	svc := service.NewLocationService(nil, route.NewSeededMockSource(1), echoLocationRepo())

	_, err := svc.Geocode(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLocationService_Geocode_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockLocationRepo{
		create: func(_ context.Context, _ domain.Waypoint) (domain.Waypoint, error) {
			return domain.Waypoint{}, repoErr
		},
	}
	svc := service.NewLocationService(nil, route.NewSeededMockSource(1), r)

	_, err := svc.Geocode(context.Background(), "Chicago, IL")

	assert.ErrorIs(t, err, repoErr)
}
