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

// TripRepo defines the persistence operations for Trips and their segments.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts the trip, its three waypoints, and its segment chain in
	// one transaction and returns the persisted record with all IDs populated.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a trip with its waypoints and ordered segments.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trip summaries ordered by created_at
	// descending, plus the total trip count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error)

	// Delete removes a trip by ID; segments and logs cascade.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db txDB
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db txDB) TripRepo {
	return &pgTripRepo{db: db}
}

// Create persists the full trip aggregate atomically: waypoints first, then
// the trip row, then the segment chain referencing the waypoint rows.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := insertLocation(ctx, tx, trip.CurrentLocation)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: current location: %w", err)
	}
	pickup, err := insertLocation(ctx, tx, trip.PickupLocation)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: pickup location: %w", err)
	}
	dropoff, err := insertLocation(ctx, tx, trip.DropoffLocation)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: dropoff location: %w", err)
	}

	const insertTrip = `
		INSERT INTO trips (current_location_id, pickup_location_id, dropoff_location_id,
		                   current_cycle_hours, total_distance_miles, total_duration_minutes,
		                   start_time, end_time)
		VALUES (@current_location_id, @pickup_location_id, @dropoff_location_id,
		        @current_cycle_hours, @total_distance_miles, @total_duration_minutes,
		        @start_time, @end_time)
		RETURNING id, created_at`

	args := pgx.NamedArgs{
		"current_location_id":    current.ID,
		"pickup_location_id":     pickup.ID,
		"dropoff_location_id":    dropoff.ID,
		"current_cycle_hours":    trip.CurrentCycleHours,
		"total_distance_miles":   trip.TotalDistanceMiles,
		"total_duration_minutes": trip.TotalDurationMinutes,
		"start_time":             trip.StartTime,
		"end_time":               trip.EndTime,
	}

	created := trip
	created.CurrentLocation = current
	created.PickupLocation = pickup
	created.DropoffLocation = dropoff

	var tripID pgtype.UUID
	if err := tx.QueryRow(ctx, insertTrip, args).Scan(&tripID, &created.CreatedAt); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: trip: %w", err)
	}
	created.ID = uuid.UUID(tripID.Bytes)

	const insertSegment = `
		INSERT INTO route_segments (trip_id, segment_type, start_location_id, end_location_id,
		                            distance_miles, duration_minutes, start_time, end_time)
		VALUES (@trip_id, @segment_type, @start_location_id, @end_location_id,
		        @distance_miles, @duration_minutes, @start_time, @end_time)
		RETURNING id`

	created.Segments = make([]domain.Segment, len(trip.Segments))
	for i, seg := range trip.Segments {
		start, err := r.resolveWaypoint(ctx, tx, seg.StartLocation, created)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: segment %d start: %w", i, err)
		}
		end, err := r.resolveWaypoint(ctx, tx, seg.EndLocation, created)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: segment %d end: %w", i, err)
		}

		args := pgx.NamedArgs{
			"trip_id":           created.ID,
			"segment_type":      string(seg.Type),
			"start_location_id": start.ID,
			"end_location_id":   end.ID,
			"distance_miles":    seg.DistanceMiles,
			"duration_minutes":  seg.DurationMinutes,
			"start_time":        seg.StartTime,
			"end_time":          seg.EndTime,
		}

		persisted := seg
		persisted.TripID = created.ID
		persisted.StartLocation = start
		persisted.EndLocation = end

		var segID pgtype.UUID
		if err := tx.QueryRow(ctx, insertSegment, args).Scan(&segID); err != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: segment %d: %w", i, err)
		}
		persisted.ID = uuid.UUID(segID.Bytes)
		created.Segments[i] = persisted
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: commit: %w", err)
	}
	return created, nil
}

// resolveWaypoint maps a segment waypoint to one of the trip's three persisted
// waypoint rows by address, inserting a fresh row for anything else.
func (r *pgTripRepo) resolveWaypoint(ctx context.Context, tx pgx.Tx, w domain.Waypoint, trip domain.Trip) (domain.Waypoint, error) {
	switch w.Address {
	case trip.CurrentLocation.Address:
		return trip.CurrentLocation, nil
	case trip.PickupLocation.Address:
		return trip.PickupLocation, nil
	case trip.DropoffLocation.Address:
		return trip.DropoffLocation, nil
	}
	return insertLocation(ctx, tx, w)
}

// GetByID retrieves the trip aggregate: trip row with joined waypoints, then
// the ordered segment chain.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT t.id, t.current_cycle_hours, t.total_distance_miles, t.total_duration_minutes,
		       t.start_time, t.end_time, t.created_at,
		       cl.id, cl.address, cl.latitude, cl.longitude,
		       pl.id, pl.address, pl.latitude, pl.longitude,
		       dl.id, dl.address, dl.latitude, dl.longitude
		FROM trips t
		JOIN locations cl ON cl.id = t.current_location_id
		JOIN locations pl ON pl.id = t.pickup_location_id
		JOIN locations dl ON dl.id = t.dropoff_location_id
		WHERE t.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	trip, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}

	trip.Segments, err = r.listSegments(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

// listSegments returns a trip's segments with joined waypoints, ordered by
// start time.
func (r *pgTripRepo) listSegments(ctx context.Context, tripID uuid.UUID) ([]domain.Segment, error) {
	const q = `
		SELECT s.id, s.trip_id, s.segment_type, s.distance_miles, s.duration_minutes,
		       s.start_time, s.end_time,
		       sl.id, sl.address, sl.latitude, sl.longitude,
		       el.id, el.address, el.latitude, el.longitude
		FROM route_segments s
		JOIN locations sl ON sl.id = s.start_location_id
		JOIN locations el ON el.id = s.end_location_id
		WHERE s.trip_id = @trip_id
		ORDER BY s.start_time`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("segments: %w", err)
	}
	defer rows.Close()

	segments := []domain.Segment{}
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, fmt.Errorf("segments: scan: %w", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("segments: rows: %w", err)
	}
	return segments, nil
}

// ListPaged returns one page of trip summaries, newest first, and the total count.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	const q = `
		SELECT t.id, cl.address, pl.address, dl.address,
		       t.total_distance_miles, t.total_duration_minutes,
		       t.start_time, t.end_time, t.created_at,
		       (SELECT count(*) FROM route_segments s WHERE s.trip_id = t.id) AS segment_count
		FROM trips t
		JOIN locations cl ON cl.id = t.current_location_id
		JOIN locations pl ON pl.id = t.pickup_location_id
		JOIN locations dl ON dl.id = t.dropoff_location_id
		ORDER BY t.created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	summaries := []domain.TripSummary{}
	for rows.Next() {
		var (
			s  domain.TripSummary
			id pgtype.UUID
		)
		err := rows.Scan(&id, &s.CurrentAddress, &s.PickupAddress, &s.DropoffAddress,
			&s.TotalDistanceMiles, &s.TotalDurationMinutes,
			&s.StartTime, &s.EndTime, &s.CreatedAt, &s.SegmentCount)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		s.ID = uuid.UUID(id.Bytes)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}
	return summaries, total, nil
}

// Delete removes a trip by primary key. Segments, logs, and entries cascade.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a trip row with its three joined waypoints into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                   domain.Trip
		id, curID, pID, dID pgtype.UUID
	)
	err := s.Scan(&id, &t.CurrentCycleHours, &t.TotalDistanceMiles, &t.TotalDurationMinutes,
		&t.StartTime, &t.EndTime, &t.CreatedAt,
		&curID, &t.CurrentLocation.Address, &t.CurrentLocation.Latitude, &t.CurrentLocation.Longitude,
		&pID, &t.PickupLocation.Address, &t.PickupLocation.Latitude, &t.PickupLocation.Longitude,
		&dID, &t.DropoffLocation.Address, &t.DropoffLocation.Latitude, &t.DropoffLocation.Longitude)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	t.CurrentLocation.ID = uuid.UUID(curID.Bytes)
	t.PickupLocation.ID = uuid.UUID(pID.Bytes)
	t.DropoffLocation.ID = uuid.UUID(dID.Bytes)
	return t, nil
}

// scanSegment maps a segment row with its joined waypoints into a domain.Segment.
func scanSegment(s scanner) (domain.Segment, error) {
	var (
		seg                     domain.Segment
		id, tripID, startID, endID pgtype.UUID
		segType                 string
	)
	err := s.Scan(&id, &tripID, &segType, &seg.DistanceMiles, &seg.DurationMinutes,
		&seg.StartTime, &seg.EndTime,
		&startID, &seg.StartLocation.Address, &seg.StartLocation.Latitude, &seg.StartLocation.Longitude,
		&endID, &seg.EndLocation.Address, &seg.EndLocation.Latitude, &seg.EndLocation.Longitude)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Segment{}, domain.ErrNotFound
		}
		return domain.Segment{}, err
	}
	seg.ID = uuid.UUID(id.Bytes)
	seg.TripID = uuid.UUID(tripID.Bytes)
	seg.Type = domain.SegmentType(segType)
	seg.StartLocation.ID = uuid.UUID(startID.Bytes)
	seg.EndLocation.ID = uuid.UUID(endID.Bytes)
	return seg, nil
}
