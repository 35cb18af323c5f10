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

// LogRepo defines the persistence operations for DailyLogs and their entries.
type LogRepo interface {
	// Replace atomically swaps a trip's daily logs: inside one transaction it
	// takes a per-trip advisory lock, deletes all existing logs for the trip,
	// and inserts the new set. The lock serializes concurrent regenerations
	// of the same trip; the transaction guarantees readers never observe a
	// partially-replaced log set.
	Replace(ctx context.Context, tripID uuid.UUID, logs []domain.DailyLog) ([]domain.DailyLog, error)

	// ListPaged returns one page of daily logs with nested entries, ordered
	// by date ascending, plus the total count. tripID nil lists logs for all
	// trips.
	ListPaged(ctx context.Context, tripID *uuid.UUID, p domain.PaginationParams) ([]domain.DailyLog, int64, error)
}

// pgLogRepo is the Postgres implementation of LogRepo.
type pgLogRepo struct {
	db txDB
}

// NewLogRepo constructs a LogRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLogRepo(db txDB) LogRepo {
	return &pgLogRepo{db: db}
}

func (r *pgLogRepo) Replace(ctx context.Context, tripID uuid.UUID, logs []domain.DailyLog) ([]domain.DailyLog, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.LogRepo.Replace: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Advisory xact lock keyed on the trip ID: a second Replace for the same
	// trip blocks here until this transaction commits or rolls back.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended(@trip_id::text, 0))`,
		pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return nil, fmt.Errorf("repo.LogRepo.Replace: lock: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM daily_logs WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return nil, fmt.Errorf("repo.LogRepo.Replace: delete: %w", err)
	}

	const insertLog = `
		INSERT INTO daily_logs (trip_id, log_date, driver_name, carrier_name,
		                        truck_number, trailer_number, start_odometer,
		                        end_odometer, total_miles)
		VALUES (@trip_id, @log_date, @driver_name, @carrier_name,
		        @truck_number, @trailer_number, @start_odometer,
		        @end_odometer, @total_miles)
		RETURNING id`

	const insertEntry = `
		INSERT INTO log_entries (daily_log_id, status, start_time, end_time, location, remarks)
		VALUES (@daily_log_id, @status, @start_time, @end_time, @location, @remarks)
		RETURNING id`

	persisted := make([]domain.DailyLog, len(logs))
	for i, log := range logs {
		args := pgx.NamedArgs{
			"trip_id":        tripID,
			"log_date":       pgtype.Date{Time: log.Date, Valid: true},
			"driver_name":    log.DriverName,
			"carrier_name":   log.CarrierName,
			"truck_number":   log.TruckNumber,
			"trailer_number": log.TrailerNumber,
			"start_odometer": log.StartOdometer,
			"end_odometer":   log.EndOdometer,
			"total_miles":    log.TotalMiles,
		}

		out := log
		out.TripID = tripID

		var logID pgtype.UUID
		if err := tx.QueryRow(ctx, insertLog, args).Scan(&logID); err != nil {
			return nil, fmt.Errorf("repo.LogRepo.Replace: log %d: %w", i, err)
		}
		out.ID = uuid.UUID(logID.Bytes)

		out.Entries = make([]domain.LogEntry, len(log.Entries))
		for j, entry := range log.Entries {
			args := pgx.NamedArgs{
				"daily_log_id": out.ID,
				"status":       string(entry.Status),
				"start_time":   entry.StartTime,
				"end_time":     entry.EndTime,
				"location":     entry.Location,
				"remarks":      entry.Remarks,
			}

			persistedEntry := entry
			persistedEntry.DailyLogID = out.ID

			var entryID pgtype.UUID
			if err := tx.QueryRow(ctx, insertEntry, args).Scan(&entryID); err != nil {
				return nil, fmt.Errorf("repo.LogRepo.Replace: log %d entry %d: %w", i, j, err)
			}
			persistedEntry.ID = uuid.UUID(entryID.Bytes)
			out.Entries[j] = persistedEntry
		}
		persisted[i] = out
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.LogRepo.Replace: commit: %w", err)
	}
	return persisted, nil
}

func (r *pgLogRepo) ListPaged(ctx context.Context, tripID *uuid.UUID, p domain.PaginationParams) ([]domain.DailyLog, int64, error) {
	// trip_id filter is optional: NULL disables it.
	const q = `
		SELECT id, trip_id, log_date, driver_name, carrier_name, truck_number,
		       trailer_number, start_odometer, end_odometer, total_miles
		FROM daily_logs
		WHERE @trip_id::uuid IS NULL OR trip_id = @trip_id
		ORDER BY log_date, trip_id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.LogRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	logs := []domain.DailyLog{}
	for rows.Next() {
		log, err := scanDailyLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.LogRepo.ListPaged: scan: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.LogRepo.ListPaged: rows: %w", err)
	}

	for i := range logs {
		logs[i].Entries, err = r.listEntries(ctx, logs[i].ID)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.LogRepo.ListPaged: %w", err)
		}
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM daily_logs WHERE @trip_id::uuid IS NULL OR trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.LogRepo.ListPaged: count: %w", err)
	}
	return logs, total, nil
}

// listEntries returns a daily log's entries ordered by start time.
func (r *pgLogRepo) listEntries(ctx context.Context, dailyLogID uuid.UUID) ([]domain.LogEntry, error) {
	const q = `
		SELECT id, daily_log_id, status, start_time, end_time, location, remarks
		FROM log_entries
		WHERE daily_log_id = @daily_log_id
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"daily_log_id": dailyLogID})
	if err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LogEntry{}
	for rows.Next() {
		var (
			e           domain.LogEntry
			id, logID   pgtype.UUID
			statusText  string
		)
		if err := rows.Scan(&id, &logID, &statusText, &e.StartTime, &e.EndTime, &e.Location, &e.Remarks); err != nil {
			return nil, fmt.Errorf("entries: scan: %w", err)
		}
		e.ID = uuid.UUID(id.Bytes)
		e.DailyLogID = uuid.UUID(logID.Bytes)
		e.Status = domain.DutyStatus(statusText)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entries: rows: %w", err)
	}
	return entries, nil
}

// scanDailyLog maps a daily_logs row into a domain.DailyLog (entries excluded).
func scanDailyLog(s scanner) (domain.DailyLog, error) {
	var (
		l          domain.DailyLog
		id, tripID pgtype.UUID
		date       pgtype.Date
	)
	err := s.Scan(&id, &tripID, &date, &l.DriverName, &l.CarrierName, &l.TruckNumber,
		&l.TrailerNumber, &l.StartOdometer, &l.EndOdometer, &l.TotalMiles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DailyLog{}, domain.ErrNotFound
		}
		return domain.DailyLog{}, err
	}
	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	l.Date = date.Time
	return l, nil
}
