package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
	"github.com/harsha80956/truck-spotter-backend/internal/eld"
	"github.com/harsha80956/truck-spotter-backend/internal/repo"
)

// LogService implements business logic for daily log generation and retrieval.
type LogService struct {
	trips    repo.TripRepo
	logs     repo.LogRepo
	identity eld.Identity
}

// NewLogService constructs a LogService. identity supplies the driver and
// equipment details stamped onto every generated log sheet.
func NewLogService(trips repo.TripRepo, logs repo.LogRepo, identity eld.Identity) *LogService {
	return &LogService{trips: trips, logs: logs, identity: identity}
}

// Regenerate partitions a trip's segment chain into per-day logs and replaces
// any previously stored set for that trip. Repeating the call for an unchanged
// trip yields an identical log set.
//
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrNoSegments if it has no segments to partition.
func (s *LogService) Regenerate(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.Regenerate: %w", err)
	}

	logs, err := eld.Partition(trip, trip.Segments, s.identity)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.Regenerate: %w", err)
	}

	persisted, err := s.logs.Replace(ctx, tripID, logs)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.Regenerate: %w", err)
	}
	return persisted, nil
}

// ListPaged returns one page of daily logs ordered by date, plus the total
// count. tripID nil lists logs across all trips. Always returns a non-nil
// slice so callers can safely range over it.
func (s *LogService) ListPaged(ctx context.Context, tripID *uuid.UUID, p domain.PaginationParams) ([]domain.DailyLog, int64, error) {
	logs, total, err := s.logs.ListPaged(ctx, tripID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.LogService.ListPaged: %w", err)
	}
	if logs == nil {
		logs = []domain.DailyLog{}
	}
	return logs, total, nil
}
