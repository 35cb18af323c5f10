package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
)

// generateLogsRequest is the POST /api/logs/generate body.
type generateLogsRequest struct {
	TripID string `json:"tripId"`
}

// GenerateLogs handles POST /api/logs/generate. Regenerating replaces the
// trip's whole log set, so repeating the call is safe.
func (s *Server) GenerateLogs(w http.ResponseWriter, r *http.Request) {
	var req generateLogsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		writeBadRequest(w, r, "invalid trip id")
		return
	}

	logs, err := s.logs.Regenerate(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, struct {
		Logs []domain.DailyLog `json:"logs"`
	}{Logs: logs})
}

// ListLogs handles GET /api/logs. ?tripId= filters to one trip; ?page= and
// ?limit= page the result.
func (s *Server) ListLogs(w http.ResponseWriter, r *http.Request) {
	var tripID *uuid.UUID
	if raw := r.URL.Query().Get("tripId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeBadRequest(w, r, "invalid trip id")
			return
		}
		tripID = &id
	}

	params := paginationFromQuery(r)
	logs, total, err := s.logs.ListPaged(r.Context(), tripID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Data       []domain.DailyLog `json:"data"`
		Pagination pagination        `json:"pagination"`
	}{
		Data:       logs,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// paginationFromQuery reads optional ?page= and ?limit= query parameters.
// Unparseable values are ignored and fall back to the defaults.
func paginationFromQuery(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			page = &v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = &v
		}
	}
	return domain.NewPaginationParams(page, limit)
}
