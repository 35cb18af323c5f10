package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
	"github.com/harsha80956/truck-spotter-backend/internal/repo"
	"github.com/harsha80956/truck-spotter-backend/internal/route"
)

// LocationService implements business logic for address geocoding.
type LocationService struct {
	geocoder  route.Geocoder // nil means mock-only mode
	mock      *route.MockSource
	locations repo.LocationRepo
}

// NewLocationService constructs a LocationService. geocoder may be nil, in
// which case coordinates are always drawn from the mock source.
func NewLocationService(geocoder route.Geocoder, mock *route.MockSource, locations repo.LocationRepo) *LocationService {
	return &LocationService{geocoder: geocoder, mock: mock, locations: locations}
}

// Geocode resolves an address to coordinates and persists the result as a
// location. When the real geocoder is unavailable or fails, coordinates are
// drawn from the mock source instead of failing the request.
//
// Returns domain.ErrValidation if the address is blank.
func (s *LocationService) Geocode(ctx context.Context, address string) (domain.Waypoint, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Waypoint{}, fmt.Errorf("service.LocationService.Geocode: %w: address is required", domain.ErrValidation)
	}

	var lat, lon float64
	if s.geocoder != nil {
		var err error
		lat, lon, err = s.geocoder.Geocode(ctx, address)
		if err != nil {
			slog.WarnContext(ctx, "geocoder failed, falling back to mock coordinates",
				slog.String("address", address), slog.Any("error", err))
			lat, lon = s.mock.Coordinates()
		}
	} else {
		lat, lon = s.mock.Coordinates()
	}

	created, err := s.locations.Create(ctx, domain.Waypoint{Address: address, Latitude: lat, Longitude: lon})
	if err != nil {
		return domain.Waypoint{}, fmt.Errorf("service.LocationService.Geocode: %w", err)
	}
	return created, nil
}
