package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
)

// LocationRepo defines the persistence operations for standalone geocoded
// locations (the geocode endpoint). Trip waypoints are inserted by TripRepo
// inside the trip-creation transaction and share the same table.
type LocationRepo interface {
	// Create inserts a new location and returns the persisted record.
	Create(ctx context.Context, w domain.Waypoint) (domain.Waypoint, error)

	// GetByID retrieves a single location by its UUID primary key.
	// Returns domain.ErrNotFound if no location with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Waypoint, error)
}

// pgLocationRepo is the Postgres implementation of LocationRepo.
type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

func (r *pgLocationRepo) Create(ctx context.Context, w domain.Waypoint) (domain.Waypoint, error) {
	result, err := insertLocation(ctx, r.db, w)
	if err != nil {
		return domain.Waypoint{}, fmt.Errorf("repo.LocationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Waypoint, error) {
	const q = `
		SELECT id, address, latitude, longitude
		FROM locations
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanWaypoint(row)
	if err != nil {
		return domain.Waypoint{}, fmt.Errorf("repo.LocationRepo.GetByID: %w", err)
	}
	return result, nil
}

// insertLocation inserts a location row. Shared with TripRepo, which inserts
// trip waypoints inside its own transaction.
func insertLocation(ctx context.Context, db db, w domain.Waypoint) (domain.Waypoint, error) {
	const q = `
		INSERT INTO locations (address, latitude, longitude)
		VALUES (@address, @latitude, @longitude)
		RETURNING id, address, latitude, longitude`

	args := pgx.NamedArgs{
		"address":   w.Address,
		"latitude":  w.Latitude,
		"longitude": w.Longitude,
	}
	return scanWaypoint(db.QueryRow(ctx, q, args))
}

// scanWaypoint maps a single database row into a domain.Waypoint.
func scanWaypoint(s scanner) (domain.Waypoint, error) {
	var (
		w  domain.Waypoint
		id pgtype.UUID
	)
	err := s.Scan(&id, &w.Address, &w.Latitude, &w.Longitude)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Waypoint{}, domain.ErrNotFound
		}
		return domain.Waypoint{}, err
	}
	w.ID = uuid.UUID(id.Bytes)
	return w, nil
}
